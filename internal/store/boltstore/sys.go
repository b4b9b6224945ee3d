package boltstore

import (
	"context"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	storepkg "github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/pkg/common"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketOperators = []byte("sys_opr")
	bucketSettings  = []byte("sys_config")
	bucketOprLogs   = []byte("sys_opr_log")
)

func (s *Store) GetOperator(ctx context.Context, username string) (*domain.SysOpr, error) {
	var opr domain.SysOpr
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOperators)
		if b == nil {
			return storepkg.NotFoundf("operator %s", username)
		}
		v := b.Get([]byte(username))
		if v == nil {
			return storepkg.NotFoundf("operator %s", username)
		}
		return json.Unmarshal(v, &opr)
	})
	if err != nil {
		if storepkg.IsNotFound(err) {
			return nil, err
		}
		return nil, storepkg.Unavailable(err, "get operator")
	}
	return &opr, nil
}

func (s *Store) SaveOperator(ctx context.Context, opr *domain.SysOpr) error {
	if opr.ID == 0 {
		opr.ID = common.UUIDint64()
		opr.CreatedAt = time.Now()
	}
	opr.UpdatedAt = time.Now()
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(opr)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketOperators).Put([]byte(opr.Username), data)
	})
	if err != nil {
		return storepkg.Unavailable(err, "save operator")
	}
	return nil
}

func (s *Store) GetSetting(ctx context.Context, stype, name string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		if b == nil {
			return storepkg.NotFoundf("setting %s/%s", stype, name)
		}
		v := b.Get([]byte(stype + "/" + name))
		if v == nil {
			return storepkg.NotFoundf("setting %s/%s", stype, name)
		}
		value = string(v)
		return nil
	})
	if err != nil {
		if storepkg.IsNotFound(err) {
			return "", err
		}
		return "", storepkg.Unavailable(err, "get setting")
	}
	return value, nil
}

func (s *Store) SaveSetting(ctx context.Context, stype, name, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put([]byte(stype+"/"+name), []byte(value))
	})
	if err != nil {
		return storepkg.Unavailable(err, "save setting")
	}
	return nil
}

func (s *Store) SaveOprLog(ctx context.Context, l *domain.SysOprLog) error {
	if l.ID == 0 {
		l.ID = common.UUIDint64()
	}
	if l.OptTime.IsZero() {
		l.OptTime = time.Now()
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(l)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketOprLogs).Put(i64key(l.ID), data)
	})
	if err != nil {
		return storepkg.Unavailable(err, "save operator log")
	}
	return nil
}

// ListOprLogs walks the audit bucket backwards; snowflake keys are
// time-ordered, so reverse key order is newest first.
func (s *Store) ListOprLogs(ctx context.Context) ([]domain.SysOprLog, error) {
	var rows []domain.SysOprLog
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketOprLogs).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var l domain.SysOprLog
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			rows = append(rows, l)
		}
		return nil
	})
	if err != nil {
		return nil, storepkg.Unavailable(err, "list operator logs")
	}
	return rows, nil
}

// PurgeStaleCarts walks every user bucket and deletes lines last touched
// before the cutoff, in one transaction.
func (s *Store) PurgeStaleCarts(ctx context.Context, before time.Time) (int64, error) {
	var purged int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketCarts)
		cur := root.Cursor()
		for user, v := cur.First(); user != nil; user, v = cur.Next() {
			if v != nil {
				// only nested per-user buckets live here
				continue
			}
			ub := root.Bucket(user)
			var stale [][]byte
			err := ub.ForEach(func(k, v []byte) error {
				var item domain.CartItem
				if err := json.Unmarshal(v, &item); err != nil {
					return err
				}
				if item.UpdatedAt.Before(before) {
					key := make([]byte, len(k))
					copy(key, k)
					stale = append(stale, key)
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, k := range stale {
				if err := ub.Delete(k); err != nil {
					return err
				}
				purged++
			}
		}
		return nil
	})
	if err != nil {
		return 0, storepkg.Unavailable(err, "purge stale carts")
	}
	return purged, nil
}
