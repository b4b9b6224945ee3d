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

func (s *Store) ListItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var rows []domain.CartItem
	err := s.db.View(func(tx *bolt.Tx) error {
		ub := tx.Bucket(bucketCarts).Bucket([]byte(userID))
		if ub == nil {
			return nil
		}
		return ub.ForEach(func(_, v []byte) error {
			var item domain.CartItem
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}
			rows = append(rows, item)
			return nil
		})
	})
	if err != nil {
		return nil, storepkg.Unavailable(err, "list cart items")
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

// UpsertItem runs read-merge-write inside one read-write transaction; bbolt
// serializes writers, so the merge is atomic and the one-line-per-product
// invariant holds under concurrent adds.
func (s *Store) UpsertItem(ctx context.Context, userID string, productID int64, qty int, priceCentsAtAdd int64) error {
	if qty < 1 {
		return storepkg.Validationf("qty must be >= 1, got %d", qty)
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		ub, err := tx.Bucket(bucketCarts).CreateBucketIfNotExists([]byte(userID))
		if err != nil {
			return err
		}
		now := time.Now()
		key := i64key(productID)
		item := domain.CartItem{
			ID:              common.UUIDint64(),
			UserID:          userID,
			ProductID:       productID,
			Qty:             qty,
			PriceCentsAtAdd: priceCentsAtAdd,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if v := ub.Get(key); v != nil {
			var existing domain.CartItem
			if err := json.Unmarshal(v, &existing); err != nil {
				return err
			}
			existing.Qty += qty
			existing.UpdatedAt = now
			item = existing
		}
		data, err := json.Marshal(&item)
		if err != nil {
			return err
		}
		return ub.Put(key, data)
	})
	if err != nil {
		return storepkg.Unavailable(err, "upsert cart item")
	}
	return nil
}

func (s *Store) SetItemQty(ctx context.Context, userID string, productID int64, qty int) error {
	if qty < 1 {
		return storepkg.Validationf("qty must be >= 1, got %d", qty)
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		ub := tx.Bucket(bucketCarts).Bucket([]byte(userID))
		if ub == nil {
			return storepkg.NotFoundf("cart line user=%s product=%d", userID, productID)
		}
		key := i64key(productID)
		v := ub.Get(key)
		if v == nil {
			return storepkg.NotFoundf("cart line user=%s product=%d", userID, productID)
		}
		var item domain.CartItem
		if err := json.Unmarshal(v, &item); err != nil {
			return err
		}
		// quantity replacement only: PriceCentsAtAdd keeps the add-time snapshot
		item.Qty = qty
		item.UpdatedAt = time.Now()
		data, err := json.Marshal(&item)
		if err != nil {
			return err
		}
		return ub.Put(key, data)
	})
	if err != nil {
		if storepkg.IsNotFound(err) {
			return err
		}
		return storepkg.Unavailable(err, "set cart qty")
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, userID string, productID int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		ub := tx.Bucket(bucketCarts).Bucket([]byte(userID))
		if ub == nil {
			return nil
		}
		return ub.Delete(i64key(productID))
	})
	if err != nil {
		return storepkg.Unavailable(err, "remove cart item")
	}
	return nil
}

// Clear drops the user's whole cart bucket in one transaction.
func (s *Store) Clear(ctx context.Context, userID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketCarts)
		if root.Bucket([]byte(userID)) == nil {
			return nil
		}
		return root.DeleteBucket([]byte(userID))
	})
	if err != nil {
		return storepkg.Unavailable(err, "clear cart")
	}
	return nil
}
