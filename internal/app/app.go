package app

import (
	"os"
	"path"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/bargain"
	"github.com/vitalhub/storefront/internal/cart"
	"github.com/vitalhub/storefront/internal/catalog"
	"github.com/vitalhub/storefront/internal/checkout"
	"github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/internal/store/boltstore"
	"github.com/vitalhub/storefront/internal/store/gormstore"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	store     store.Store
	sched     *cron.Cron
	bus       EventBus.Bus

	configManager *ConfigManager

	catalogSvc *catalog.Service
	cartSvc    *cart.Service
	bargainSvc *bargain.Service
	composer   *checkout.Composer
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider   = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ ServiceProvider = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() store.Store {
	return a.store
}

// OverrideStore replaces the application's storage backend (used in tests).
func (a *Application) OverrideStore(st store.Store) {
	a.store = st
	if a.bus == nil {
		a.bus = EventBus.New()
	}
	if a.configManager == nil {
		a.configManager = NewConfigManager(a)
	}
	a.initServices()
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	cfg.InitDirs()

	// Open the configured storage backend
	a.store = openStore(cfg)
	zap.S().Infof("storage backend ready, type: %s", a.store.Name())

	a.bus = EventBus.New()
	a.configManager = NewConfigManager(a)

	a.initServices()

	a.checkSuper()
	a.checkSettings()

	if err := bargain.RegisterMailNotifier(a.bus, cfg.Smtp); err != nil {
		zap.S().Warnf("bargain mail notifier not registered: %v", err)
	}

	a.initJob()
}

func (a *Application) initServices() {
	a.catalogSvc = catalog.NewService(a.store, a.appConfig.Redis)
	a.cartSvc = cart.NewService(a.store, a.store)
	a.bargainSvc = bargain.NewService(a.store, a.bus)
	a.composer = checkout.NewComposer(
		a.appConfig.Checkout.BusinessPhone,
		a.appConfig.Checkout.StoreName,
	)
}

func openStore(cfg *config.AppConfig) store.Store {
	switch cfg.Database.Type {
	case "bolt":
		file := cfg.Database.BoltFile
		if file == "" {
			file = path.Join(cfg.GetDataDir(), "storefront.db")
		}
		st, err := boltstore.Open(file)
		if err != nil {
			zap.S().Fatalf("failed to open bolt store: %v", err)
		}
		return st
	default:
		st, err := gormstore.Open(cfg.Database)
		if err != nil {
			zap.S().Fatalf("failed to open postgres store: %v", err)
		}
		return st
	}
}

// Catalog returns the catalog service
func (a *Application) Catalog() *catalog.Service {
	return a.catalogSvc
}

// Cart returns the cart service
func (a *Application) Cart() *cart.Service {
	return a.cartSvc
}

// Bargain returns the bargain offer service
func (a *Application) Bargain() *bargain.Service {
	return a.bargainSvc
}

// Composer returns the checkout message composer
func (a *Application) Composer() *checkout.Composer {
	return a.composer
}

// Bus returns the application event bus
func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// ConfigMgr returns the configuration manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.configManager.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.configManager.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.configManager.GetBool(category, key)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.catalogSvc != nil {
		a.catalogSvc.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = zap.L().Sync()
}
