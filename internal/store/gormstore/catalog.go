package gormstore

import (
	"context"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/pkg/common"
)

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var rows []domain.Category
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "list categories")
	}
	return rows, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, wrap(err, "get category")
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == 0 {
		c.ID = common.UUIDint64()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return wrap(s.db.WithContext(ctx).Create(c).Error, "create category")
}

// DeleteCategory removes the category only. Products keep their dangling
// category id and degrade to the Unknown label on display.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return wrap(s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{}).Error, "delete category")
}

func (s *Store) ListProducts(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{})
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	var rows []domain.Product
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "list products")
	}
	return rows, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, wrap(err, "get product")
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return wrap(s.db.WithContext(ctx).Create(p).Error, "create product")
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	var existing domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", p.ID).First(&existing).Error; err != nil {
		return wrap(err, "update product")
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	return wrap(s.db.WithContext(ctx).Save(p).Error, "update product")
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return wrap(s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error, "delete product")
}
