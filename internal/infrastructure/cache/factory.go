package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewCatalogStore builds the store named by backend. "auto" tries Redis and
// falls back to memory; "none" returns a nil store and no error.
func NewCatalogStore(ctx context.Context, backend string, redisCfg config.RedisConfig, logger *zap.Logger) (CatalogStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := &redis.Options{
		Addr:     redisCfg.Addr(),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	switch backend {
	case config.CacheBackendNone:
		logger.Info("Catalog cache disabled")
		return nil, nil
	case config.CacheBackendMemory:
		logger.Info("Using in-memory catalog cache")
		return NewInMemoryCatalogStore(), nil
	case config.CacheBackendRedis:
		store, err := NewRedisCatalogStore(ctx, opts, WithStoreLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("redis catalog cache required but unavailable: %w", err)
		}
		logger.Info("Using Redis catalog cache", zap.String("addr", opts.Addr))
		return store, nil
	case config.CacheBackendAuto, "":
		store, err := NewRedisCatalogStore(ctx, opts, WithStoreLogger(logger))
		if err == nil {
			logger.Info("Using Redis catalog cache", zap.String("addr", opts.Addr))
			return store, nil
		}
		logger.Warn("Redis unavailable, falling back to in-memory catalog cache", zap.Error(err))
		return NewInMemoryCatalogStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
