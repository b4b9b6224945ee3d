package boltstore

import (
	"encoding/binary"
	"time"

	jsoniter "github.com/json-iterator/go"
	storepkg "github.com/vitalhub/storefront/internal/store"
	bolt "go.etcd.io/bbolt"
)

// Store is the document adapter backed by an embedded bbolt file. Records
// are stored as JSON documents; cart lines live in a nested bucket per user
// so every cart mutation is one read-write transaction.
type Store struct {
	db *bolt.DB
}

var _ storepkg.Store = (*Store)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	bucketCategories = []byte("categories")
	bucketProducts   = []byte("products")
	bucketCarts      = []byte("carts")
	bucketBargains   = []byte("bargain_offers")
)

// Open opens (or creates) the document store file.
func Open(file string) (*Store, error) {
	db, err := bolt.Open(file, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, storepkg.Unavailable(err, "open bolt store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketCategories, bucketProducts, bucketCarts, bucketBargains, bucketOperators, bucketSettings, bucketOprLogs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, storepkg.Unavailable(err, "init bolt buckets")
	}
	return &Store{db: db}, nil
}

func (s *Store) Name() string { return "bolt" }

func (s *Store) Close() error { return s.db.Close() }

func i64key(id int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[:]
}
