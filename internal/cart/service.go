package cart

import (
	"context"
	"strings"

	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
	"go.uber.org/zap"
)

// Service is the authoritative view of "what is in the cart". All state
// lives in the store; every mutation finishes with a pessimistic refresh so
// callers always see what the backend actually holds, including its
// denormalized product fields. The service refuses to operate without a
// user identity: cart ownership is tied 1:1 to an authenticated principal.
type Service struct {
	carts   store.CartStore
	catalog store.CatalogStore
}

func NewService(carts store.CartStore, catalog store.CatalogStore) *Service {
	return &Service{carts: carts, catalog: catalog}
}

// Load fetches all persisted lines for the user and joins each with its
// product snapshot. A missing product does not fail the load; the line keeps
// its stored data and degrades display.
func (s *Service) Load(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	items, err := s.carts.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinProducts(ctx, items), nil
}

// Add merges qty into the user's line for the product. The add-time price
// snapshot is taken from the product's current catalog price on first add
// only; subsequent adds increment quantity and leave the snapshot alone.
func (s *Service) Add(ctx context.Context, userID string, product *domain.Product, qty int) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, store.Validationf("product is required")
	}
	if qty < 1 {
		return nil, store.Validationf("qty must be >= 1, got %d", qty)
	}
	if err := s.carts.UpsertItem(ctx, userID, product.ID, qty, product.PriceCents); err != nil {
		zap.L().Error("cart add failed",
			zap.String("user_id", userID),
			zap.Int64("product_id", product.ID),
			zap.Error(err))
		return nil, err
	}
	return s.Load(ctx, userID)
}

// UpdateQuantity replaces the stored quantity for the line in place. It
// never touches PriceCentsAtAdd and never deletes the line: quantity below 1
// is rejected, and removal stays an explicit separate operation.
func (s *Service) UpdateQuantity(ctx context.Context, userID string, productID int64, qty int) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if qty < 1 {
		return nil, store.Validationf("qty must be >= 1, got %d", qty)
	}
	if err := s.carts.SetItemQty(ctx, userID, productID, qty); err != nil {
		return nil, err
	}
	return s.Load(ctx, userID)
}

// Remove deletes the line. Removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, userID string, productID int64) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Load(ctx, userID)
}

// Clear removes every line for the user with one bulk store call.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.carts.Clear(ctx, userID)
}

func (s *Service) joinProducts(ctx context.Context, items []domain.CartItem) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		line := domain.CartLine{CartItem: item}
		p, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if !store.IsNotFound(err) {
				zap.S().Warnf("cart product join failed for %d: %v", item.ProductID, err)
			}
			lines = append(lines, line)
			continue
		}
		line.ProductName = p.Name
		line.ProductSlug = p.Slug
		line.PriceCents = p.PriceCents
		if urls := p.ImageList(); len(urls) > 0 {
			line.Image = urls[0]
		}
		lines = append(lines, line)
	}
	return lines
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return store.ErrAuthRequired
	}
	return nil
}
