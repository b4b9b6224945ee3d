package gormstore

import (
	"errors"
	"time"

	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/domain"
	storepkg "github.com/vitalhub/storefront/internal/store"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the relational adapter backed by GORM over PostgreSQL.
type Store struct {
	db *gorm.DB
}

var _ storepkg.Store = (*Store)(nil)

// Open connects to the configured postgres instance and migrates the schema.
func Open(cfg config.DBConfig) (*Store, error) {
	loglevel := logger.Silent
	if cfg.Debug {
		loglevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(loglevel),
	})
	if err != nil {
		return nil, storepkg.Unavailable(err, "open postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, storepkg.Unavailable(err, "postgres pool")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing gorm handle (used in tests).
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string { return "postgres" }

// DB exposes the underlying handle for the operator bootstrap and admin
// tooling that is relational-only.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrap classifies a gorm error into the shared taxonomy.
func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storepkg.NotFoundf("%s", op)
	}
	return storepkg.Unavailable(err, op)
}
