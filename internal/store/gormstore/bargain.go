package gormstore

import (
	"context"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	storepkg "github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/pkg/common"
)

func (s *Store) CreateOffer(ctx context.Context, o *domain.BargainOffer) error {
	if o.ID == 0 {
		o.ID = common.UUIDint64()
	}
	if o.Status == "" {
		o.Status = domain.BargainStatusPending
	}
	o.CreatedAt = time.Now()
	return wrap(s.db.WithContext(ctx).Create(o).Error, "create bargain offer")
}

func (s *Store) ListOffers(ctx context.Context, status string) ([]domain.BargainOffer, error) {
	db := s.db.WithContext(ctx).Model(&domain.BargainOffer{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var rows []domain.BargainOffer
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "list bargain offers")
	}
	return rows, nil
}

func (s *Store) UpdateOfferStatus(ctx context.Context, id int64, status, adminResponse string) error {
	if !domain.ValidBargainStatus(status) {
		return storepkg.Validationf("invalid bargain status %q", status)
	}
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&domain.BargainOffer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"admin_response": adminResponse,
			"responded_at":   now,
		})
	if res.Error != nil {
		return wrap(res.Error, "update bargain status")
	}
	if res.RowsAffected == 0 {
		return storepkg.NotFoundf("bargain offer %d", id)
	}
	return nil
}
