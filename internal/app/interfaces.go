package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/bargain"
	"github.com/vitalhub/storefront/internal/cart"
	"github.com/vitalhub/storefront/internal/catalog"
	"github.com/vitalhub/storefront/internal/checkout"
	"github.com/vitalhub/storefront/internal/store"
)

// StoreProvider provides storage backend access
type StoreProvider interface {
	Store() store.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ServiceProvider provides the storefront services
type ServiceProvider interface {
	Catalog() *catalog.Service
	Cart() *cart.Service
	Bargain() *bargain.Service
	Composer() *checkout.Composer
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	StoreProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	ServiceProvider

	Bus() EventBus.Bus
	Release()
}
