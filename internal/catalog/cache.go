package catalog

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/domain"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const productCacheKey = "storefront:catalog:products"

// productCache is a read-through Redis cache for the full product list.
// It only ever serves reads; every catalog mutation invalidates it. Cache
// failures are logged and treated as misses so the store stays authoritative.
type productCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newProductCache(cfg config.RedisConfig) *productCache {
	if !cfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Passwd,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.S().Warnf("catalog cache disabled, redis unreachable: %v", err)
		_ = client.Close()
		return nil
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &productCache{client: client, ttl: ttl}
}

func (c *productCache) get(ctx context.Context) ([]domain.Product, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, productCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.S().Warnf("catalog cache get failed: %v", err)
		}
		return nil, false
	}
	var rows []domain.Product
	if err := json.Unmarshal(data, &rows); err != nil {
		zap.S().Warnf("catalog cache decode failed: %v", err)
		return nil, false
	}
	return rows, true
}

func (c *productCache) set(ctx context.Context, rows []domain.Product) {
	if c == nil {
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productCacheKey, data, c.ttl).Err(); err != nil {
		zap.S().Warnf("catalog cache set failed: %v", err)
	}
}

func (c *productCache) invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, productCacheKey).Err(); err != nil {
		zap.S().Warnf("catalog cache invalidate failed: %v", err)
	}
}

func (c *productCache) close() {
	if c != nil {
		_ = c.client.Close()
	}
}
