package bargain

import (
	"context"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
	"go.uber.org/zap"
)

// EventOfferCreated is published on the bus after a successful submission.
// Subscribers receive the persisted *domain.BargainOffer.
const EventOfferCreated = "bargain:created"

// Service handles customer price offers. Offers are write-once at
// submission; only the admin workflow mutates status afterwards.
type Service struct {
	store store.BargainStore
	bus   EventBus.Bus
}

func NewService(st store.BargainStore, bus EventBus.Bus) *Service {
	return &Service{store: st, bus: bus}
}

// Submit validates and persists a new offer with status pending, then
// publishes the created event. Persist failure suppresses the event.
func (s *Service) Submit(ctx context.Context, o *domain.BargainOffer) error {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	o.CustomerPhone = strings.TrimSpace(o.CustomerPhone)
	o.Message = strings.TrimSpace(o.Message)

	if o.ProductID == 0 {
		return store.Validationf("product is required")
	}
	if o.CustomerName == "" || o.CustomerPhone == "" {
		return store.Validationf("customer name and phone are required")
	}
	if o.OfferedPriceCents <= 0 {
		return store.Validationf("offered price must be > 0")
	}
	if o.Qty < 1 {
		o.Qty = 1
	}
	o.Status = domain.BargainStatusPending

	if err := s.store.CreateOffer(ctx, o); err != nil {
		return err
	}

	zap.L().Info("bargain offer submitted",
		zap.Int64("product_id", o.ProductID),
		zap.Int64("offered_price_cents", o.OfferedPriceCents),
		zap.Int("qty", o.Qty))

	if s.bus != nil {
		s.bus.Publish(EventOfferCreated, o)
	}
	return nil
}

// List returns offers newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]domain.BargainOffer, error) {
	if status != "" && !domain.ValidBargainStatus(status) {
		return nil, store.Validationf("invalid bargain status %q", status)
	}
	return s.store.ListOffers(ctx, status)
}

// Respond moves an offer through the admin workflow.
func (s *Service) Respond(ctx context.Context, id int64, status, adminResponse string) error {
	return s.store.UpdateOfferStatus(ctx, id, status, adminResponse)
}
