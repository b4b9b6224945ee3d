package boltstore

import (
	"context"
	"sort"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	storepkg "github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/pkg/common"
	bolt "go.etcd.io/bbolt"
)

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var rows []domain.Category
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCategories).ForEach(func(_, v []byte) error {
			var c domain.Category
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			rows = append(rows, c)
			return nil
		})
	})
	if err != nil {
		return nil, storepkg.Unavailable(err, "list categories")
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketCategories).Get(i64key(id))
		if v == nil {
			return storepkg.NotFoundf("category %d", id)
		}
		return json.Unmarshal(v, &c)
	})
	if err != nil {
		if storepkg.IsNotFound(err) {
			return nil, err
		}
		return nil, storepkg.Unavailable(err, "get category")
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
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketCategories).Put(i64key(c.ID), data)
	})
	if err != nil {
		return storepkg.Unavailable(err, "create category")
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCategories).Delete(i64key(id))
	})
	if err != nil {
		return storepkg.Unavailable(err, "delete category")
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	var rows []domain.Product
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProducts).ForEach(func(_, v []byte) error {
			var p domain.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if categoryID != 0 && p.CategoryID != categoryID {
				return nil
			}
			rows = append(rows, p)
			return nil
		})
	})
	if err != nil {
		return nil, storepkg.Unavailable(err, "list products")
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketProducts).Get(i64key(id))
		if v == nil {
			return storepkg.NotFoundf("product %d", id)
		}
		return json.Unmarshal(v, &p)
	})
	if err != nil {
		if storepkg.IsNotFound(err) {
			return nil, err
		}
		return nil, storepkg.Unavailable(err, "get product")
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
	return s.putProduct(p, "create product")
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	existing, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	return s.putProduct(p, "update product")
}

func (s *Store) putProduct(p *domain.Product, op string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketProducts).Put(i64key(p.ID), data)
	})
	if err != nil {
		return storepkg.Unavailable(err, op)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProducts).Delete(i64key(id))
	})
	if err != nil {
		return storepkg.Unavailable(err, "delete product")
	}
	return nil
}
