package domain

import "time"

// CartItem is one product-quantity pairing owned by a user's cart.
// Exactly one row may exist per (user_id, product_id). PriceCentsAtAdd is a
// deliberate snapshot taken on first add; it does not track later catalog
// price changes.
type CartItem struct {
	ID              int64     `gorm:"primaryKey" json:"id,string"`
	UserID          string    `gorm:"size:64;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID       int64     `gorm:"uniqueIndex:idx_cart_user_product" json:"product_id,string"`
	Qty             int       `json:"qty"`
	PriceCentsAtAdd int64     `json:"price_cents_at_add"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine is a CartItem joined with its product snapshot for display and
// checkout composition.
type CartLine struct {
	CartItem
	ProductName string `json:"product_name"`
	ProductSlug string `json:"product_slug"`
	Image       string `json:"image"`
	// PriceCents is the live catalog price, shown alongside the add-time
	// snapshot so the UI can surface price drift.
	PriceCents int64 `json:"price_cents"`
}

// Subtotal is qty times the add-time unit price, in minor units.
func (l CartLine) Subtotal() int64 {
	return int64(l.Qty) * l.PriceCentsAtAdd
}
