// Package cache keeps read-through copies of the product catalog in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/joanie-store/storefront/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	VersionKey       = "products:version"
	productKeyPrefix = "products:v:"
	DefaultTTL       = 10 * time.Minute
)

// ProductCache caches product lists and single products under a version
// number. Bumping the version orphans every cached entry at once.
// A ProductCache with a nil client is a valid, always-missing cache.
type ProductCache struct {
	redis redis.Cmdable
	ttl   time.Duration
}

func NewProductCache(client redis.Cmdable, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{redis: client, ttl: ttl}
}

// GetList returns the cached listing for category ("" for all products).
func (pc *ProductCache) GetList(ctx context.Context, category models.Category) ([]models.Product, bool) {
	var products []models.Product
	if !pc.get(ctx, func(v int64) string { return listKey(v, category) }, &products) {
		return nil, false
	}
	return products, true
}

func (pc *ProductCache) SetList(ctx context.Context, category models.Category, products []models.Product) {
	pc.set(ctx, func(v int64) string { return listKey(v, category) }, products)
}

func (pc *ProductCache) GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	var product models.Product
	if !pc.get(ctx, func(v int64) string { return productKey(v, id) }, &product) {
		return nil, false
	}
	return &product, true
}

func (pc *ProductCache) SetProduct(ctx context.Context, product *models.Product) {
	pc.set(ctx, func(v int64) string { return productKey(v, product.ID) }, product)
}

// Invalidate drops every cached entry by bumping the version.
func (pc *ProductCache) Invalidate(ctx context.Context) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	newVersion, err := pc.redis.Incr(ctx, VersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	zap.L().Info("Product cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (pc *ProductCache) get(ctx context.Context, key func(int64) string, dst interface{}) bool {
	if pc == nil || pc.redis == nil {
		return false
	}
	version, err := pc.version(ctx)
	if err != nil {
		return false
	}

	data, err := pc.redis.Get(ctx, key(version)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("Failed to read product cache", zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		zap.L().Warn("Failed to unmarshal cached products", zap.Error(err))
		return false
	}
	return true
}

func (pc *ProductCache) set(ctx context.Context, key func(int64) string, value interface{}) {
	if pc == nil || pc.redis == nil {
		return
	}
	version, err := pc.version(ctx)
	if err != nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("Failed to marshal products for cache", zap.Error(err))
		return
	}
	if err := pc.redis.Set(ctx, key(version), data, pc.ttl).Err(); err != nil {
		zap.L().Warn("Failed to cache products", zap.Error(err))
	}
}

// version reads the current cache generation, initialising it on first use.
func (pc *ProductCache) version(ctx context.Context) (int64, error) {
	ver, err := pc.redis.Get(ctx, VersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		if err := pc.redis.SetNX(ctx, VersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err == nil {
		err = fmt.Errorf("invalid cache version %d", ver)
	}
	zap.L().Warn("Failed to read product cache version", zap.Error(err))
	return 0, err
}

func listKey(version int64, category models.Category) string {
	c := string(category)
	if c == "" {
		c = "all"
	}
	return fmt.Sprintf("%s%d:c:%s", productKeyPrefix, version, c)
}

func productKey(version int64, id string) string {
	return fmt.Sprintf("%s%d:id:%s", productKeyPrefix, version, id)
}
