package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/pkg/common"
	"gorm.io/gorm"
)

func (s *Store) GetOperator(ctx context.Context, username string) (*domain.SysOpr, error) {
	var opr domain.SysOpr
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&opr).Error; err != nil {
		return nil, wrap(err, "get operator")
	}
	return &opr, nil
}

func (s *Store) SaveOperator(ctx context.Context, opr *domain.SysOpr) error {
	if opr.ID == 0 {
		opr.ID = common.UUIDint64()
		opr.CreatedAt = time.Now()
	}
	opr.UpdatedAt = time.Now()
	return wrap(s.db.WithContext(ctx).Save(opr).Error, "save operator")
}

func (s *Store) GetSetting(ctx context.Context, stype, name string) (string, error) {
	var cfg domain.SysConfig
	err := s.db.WithContext(ctx).Where("type = ? AND name = ?", stype, name).First(&cfg).Error
	if err != nil {
		return "", wrap(err, "get setting")
	}
	return cfg.Value, nil
}

func (s *Store) SaveSetting(ctx context.Context, stype, name, value string) error {
	var cfg domain.SysConfig
	err := s.db.WithContext(ctx).Where("type = ? AND name = ?", stype, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cfg = domain.SysConfig{
			ID:        common.UUIDint64(),
			Type:      stype,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return wrap(s.db.WithContext(ctx).Create(&cfg).Error, "save setting")
	case err != nil:
		return wrap(err, "save setting")
	}
	return wrap(s.db.WithContext(ctx).Model(&domain.SysConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error, "save setting")
}

func (s *Store) SaveOprLog(ctx context.Context, l *domain.SysOprLog) error {
	if l.ID == 0 {
		l.ID = common.UUIDint64()
	}
	if l.OptTime.IsZero() {
		l.OptTime = time.Now()
	}
	return wrap(s.db.WithContext(ctx).Create(l).Error, "save operator log")
}

func (s *Store) ListOprLogs(ctx context.Context) ([]domain.SysOprLog, error) {
	var rows []domain.SysOprLog
	if err := s.db.WithContext(ctx).Order("opt_time DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "list operator logs")
	}
	return rows, nil
}

// PurgeStaleCarts bulk-deletes cart lines last touched before the cutoff.
func (s *Store) PurgeStaleCarts(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return 0, wrap(res.Error, "purge stale carts")
	}
	return res.RowsAffected, nil
}
