package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service normalizes whatever shape the active backend stores into the
// canonical catalog model: products carry a resolved category name, and a
// dangling category reference degrades to the "Unknown" label instead of
// failing the fetch.
type Service struct {
	store store.CatalogStore
	cache *productCache
	group singleflight.Group
}

func NewService(st store.CatalogStore, redisCfg config.RedisConfig) *Service {
	return &Service{
		store: st,
		cache: newProductCache(redisCfg),
	}
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err, _ := s.group.Do("categories", func() (interface{}, error) {
		return s.store.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	// every caller joined on the flight sees the same backing array, so
	// each gets its own copy to filter or reorder freely
	shared := rows.([]domain.Category)
	out := make([]domain.Category, len(shared))
	copy(out, shared)
	return out, nil
}

// Products fetches and normalizes the product list. The category join is
// done here: categories are fetched once, an id to name lookup is built, and
// every product is mapped over it. Identical concurrent fetches collapse
// into one backend call.
func (s *Service) Products(ctx context.Context, categoryID int64) ([]domain.ProductView, error) {
	products, err := s.fetchProducts(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		// keep the fetch alive, every product degrades to Unknown
		zap.S().Warnf("category lookup failed, labeling products Unknown: %v", err)
		categories = nil
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		name, ok := names[p.CategoryID]
		if !ok {
			name = domain.UnknownCategoryName
		}
		views = append(views, domain.ProductView{
			Product:      p,
			CategoryName: name,
			ImageURLs:    p.ImageList(),
		})
	}
	return views, nil
}

// Product fetches one product with its category resolved.
func (s *Service) Product(ctx context.Context, id int64) (*domain.ProductView, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	name := domain.UnknownCategoryName
	if c, err := s.store.GetCategory(ctx, p.CategoryID); err == nil {
		name = c.Name
	}
	return &domain.ProductView{Product: *p, CategoryName: name, ImageURLs: p.ImageList()}, nil
}

func (s *Service) fetchProducts(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	// cache holds the unfiltered list only
	if categoryID == 0 {
		if rows, ok := s.cache.get(ctx); ok {
			return rows, nil
		}
	}
	key := "products"
	if categoryID != 0 {
		key = "products:" + strconv.FormatInt(categoryID, 10)
	}
	rows, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.store.ListProducts(ctx, categoryID)
	})
	if err != nil {
		return nil, err
	}
	products := rows.([]domain.Product)
	if categoryID == 0 {
		s.cache.set(ctx, products)
	}
	return products, nil
}

// CreateCategory validates and persists a new category.
func (s *Service) CreateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return store.Validationf("category name is required")
	}
	if c.Slug == "" {
		c.Slug = common.Slugify(c.Name)
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

// CreateProduct validates invariants (non-negative price and stock, category
// present) and persists a new product.
func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

// Close releases the cache connection if one was configured.
func (s *Service) Close() {
	s.cache.close()
}

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return store.Validationf("product name is required")
	}
	if p.PriceCents < 0 {
		return store.Validationf("price must be >= 0, got %d", p.PriceCents)
	}
	if p.Stock < 0 {
		return store.Validationf("stock must be >= 0, got %d", p.Stock)
	}
	if p.Slug == "" {
		p.Slug = common.Slugify(p.Name)
	}
	return nil
}
