package gormstore

import (
	"context"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	storepkg "github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/pkg/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) ListItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var rows []domain.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "list cart items")
	}
	return rows, nil
}

// UpsertItem merges qty into the user's line in a single statement. The
// unique (user_id, product_id) index plus ON CONFLICT make the increment
// atomic on the server, so a concurrent duplicate add can never create a
// second line.
func (s *Store) UpsertItem(ctx context.Context, userID string, productID int64, qty int, priceCentsAtAdd int64) error {
	if qty < 1 {
		return storepkg.Validationf("qty must be >= 1, got %d", qty)
	}
	now := time.Now()
	item := domain.CartItem{
		ID:              common.UUIDint64(),
		UserID:          userID,
		ProductID:       productID,
		Qty:             qty,
		PriceCentsAtAdd: priceCentsAtAdd,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"qty":        gorm.Expr("cart_items.qty + excluded.qty"),
			"updated_at": now,
		}),
	}).Create(&item).Error
	return wrap(err, "upsert cart item")
}

// SetItemQty replaces the stored quantity in place. The add-time price
// snapshot is never touched here.
func (s *Store) SetItemQty(ctx context.Context, userID string, productID int64, qty int) error {
	if qty < 1 {
		return storepkg.Validationf("qty must be >= 1, got %d", qty)
	}
	res := s.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{"qty": qty, "updated_at": time.Now()})
	if res.Error != nil {
		return wrap(res.Error, "set cart qty")
	}
	if res.RowsAffected == 0 {
		return storepkg.NotFoundf("cart line user=%s product=%d", userID, productID)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, userID string, productID int64) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{}).Error
	return wrap(err, "remove cart item")
}

// Clear is one bulk DELETE, never per-line deletes.
func (s *Store) Clear(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
	return wrap(err, "clear cart")
}
