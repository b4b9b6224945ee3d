package store

import (
	"context"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
)

// CatalogStore is the storage contract for categories and products. The
// services depend only on this interface; they never know whether the
// relational or the document adapter is active.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	// ListProducts returns products, optionally restricted to one category
	// (categoryID == 0 means all).
	ListProducts(ctx context.Context, categoryID int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CartStore persists per-user cart lines.
type CartStore interface {
	// ListItems returns all lines for the user, oldest first.
	ListItems(ctx context.Context, userID string) ([]domain.CartItem, error)

	// UpsertItem merges qty into the user's line for productID in one
	// atomic storage operation: an existing line has its quantity
	// incremented, otherwise a new line is created with priceCentsAtAdd as
	// the snapshot price. Two concurrent adds must never produce two lines.
	UpsertItem(ctx context.Context, userID string, productID int64, qty int, priceCentsAtAdd int64) error

	// SetItemQty replaces the stored quantity in place, preserving the
	// add-time price snapshot. Missing line yields ErrNotFound.
	SetItemQty(ctx context.Context, userID string, productID int64, qty int) error

	// RemoveItem deletes the line. Removing an absent line is not an error.
	RemoveItem(ctx context.Context, userID string, productID int64) error

	// Clear removes every line for the user in a single bulk operation.
	Clear(ctx context.Context, userID string) error
}

// BargainStore persists customer price offers.
type BargainStore interface {
	CreateOffer(ctx context.Context, o *domain.BargainOffer) error
	// ListOffers returns offers newest first, optionally filtered by status.
	ListOffers(ctx context.Context, status string) ([]domain.BargainOffer, error)
	UpdateOfferStatus(ctx context.Context, id int64, status, adminResponse string) error
}

// SysStore persists operator accounts and runtime settings.
type SysStore interface {
	GetOperator(ctx context.Context, username string) (*domain.SysOpr, error)
	SaveOperator(ctx context.Context, opr *domain.SysOpr) error

	GetSetting(ctx context.Context, stype, name string) (string, error)
	SaveSetting(ctx context.Context, stype, name, value string) error

	// SaveOprLog appends an operator action to the audit trail.
	SaveOprLog(ctx context.Context, l *domain.SysOprLog) error
	// ListOprLogs returns audit entries newest first.
	ListOprLogs(ctx context.Context) ([]domain.SysOprLog, error)
}

// MaintenanceStore holds housekeeping operations run by the scheduler.
type MaintenanceStore interface {
	// PurgeStaleCarts deletes cart lines untouched since before and reports
	// how many were removed.
	PurgeStaleCarts(ctx context.Context, before time.Time) (int64, error)
}

// Store bundles the full storage surface of one backend adapter.
type Store interface {
	CatalogStore
	CartStore
	BargainStore
	SysStore
	MaintenanceStore

	// Name reports the adapter kind ("postgres" or "bolt").
	Name() string
	Close() error
}
