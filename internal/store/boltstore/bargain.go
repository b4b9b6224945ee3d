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

func (s *Store) CreateOffer(ctx context.Context, o *domain.BargainOffer) error {
	if o.ID == 0 {
		o.ID = common.UUIDint64()
	}
	if o.Status == "" {
		o.Status = domain.BargainStatusPending
	}
	o.CreatedAt = time.Now()
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(o)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketBargains).Put(i64key(o.ID), data)
	})
	if err != nil {
		return storepkg.Unavailable(err, "create bargain offer")
	}
	return nil
}

func (s *Store) ListOffers(ctx context.Context, status string) ([]domain.BargainOffer, error) {
	var rows []domain.BargainOffer
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBargains).ForEach(func(_, v []byte) error {
			var o domain.BargainOffer
			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}
			if status != "" && o.Status != status {
				return nil
			}
			rows = append(rows, o)
			return nil
		})
	})
	if err != nil {
		return nil, storepkg.Unavailable(err, "list bargain offers")
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (s *Store) UpdateOfferStatus(ctx context.Context, id int64, status, adminResponse string) error {
	if !domain.ValidBargainStatus(status) {
		return storepkg.Validationf("invalid bargain status %q", status)
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBargains)
		v := b.Get(i64key(id))
		if v == nil {
			return storepkg.NotFoundf("bargain offer %d", id)
		}
		var o domain.BargainOffer
		if err := json.Unmarshal(v, &o); err != nil {
			return err
		}
		now := time.Now()
		o.Status = status
		o.AdminResponse = adminResponse
		o.RespondedAt = &now
		data, err := json.Marshal(&o)
		if err != nil {
			return err
		}
		return b.Put(i64key(id), data)
	})
	if err != nil {
		if storepkg.IsNotFound(err) {
			return err
		}
		return storepkg.Unavailable(err, "update bargain status")
	}
	return nil
}
