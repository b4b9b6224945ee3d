package app

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/vitalhub/storefront/internal/store"
	"go.uber.org/zap"
)

// Settings categories and keys
const (
	SettingsTypeCheckout = "checkout"
	SettingsTypeCart     = "cart"

	KeyBusinessPhone = "BusinessPhone"
	KeyStoreName     = "StoreName"
	KeyCartPurgeDays = "CartPurgeDays"
)

// ConfigManager reads runtime settings from the active store with a short
// in-memory cache on top. Values written through SaveSetting take effect on
// the next cache miss.
type ConfigManager struct {
	app   AppContext
	mu    sync.RWMutex
	cache map[string]cachedValue
	ttl   time.Duration
}

type cachedValue struct {
	value   string
	expires time.Time
}

func NewConfigManager(app AppContext) *ConfigManager {
	return &ConfigManager{
		app:   app,
		cache: make(map[string]cachedValue),
		ttl:   30 * time.Second,
	}
}

func (m *ConfigManager) GetString(category, key string) string {
	ck := category + "/" + key
	m.mu.RLock()
	if cv, ok := m.cache[ck]; ok && time.Now().Before(cv.expires) {
		m.mu.RUnlock()
		return cv.value
	}
	m.mu.RUnlock()

	val, err := m.app.Store().GetSetting(context.Background(), category, key)
	if err != nil {
		if !store.IsNotFound(err) {
			zap.S().Warnf("settings read failed for %s: %v", ck, err)
		}
		return ""
	}

	m.mu.Lock()
	m.cache[ck] = cachedValue{value: val, expires: time.Now().Add(m.ttl)}
	m.mu.Unlock()
	return val
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.GetString(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.GetString(category, key))
}

// Save writes a setting through to the store and drops the cached value.
func (m *ConfigManager) Save(category, key, value string) error {
	if err := m.app.Store().SaveSetting(context.Background(), category, key, value); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.cache, category+"/"+key)
	m.mu.Unlock()
	return nil
}
