package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix     = "readiness:catalog:"
	defaultScanBatchSize = 100
)

// RedisCatalogStore implements CatalogStore on Redis so every instance
// serves the same catalog snapshot
type RedisCatalogStore struct {
	client     *redis.Client
	ownsClient bool
	prefix     string
	logger     *zap.Logger
}

// RedisCatalogStoreOption configures a RedisCatalogStore
type RedisCatalogStoreOption func(*RedisCatalogStore)

// WithKeyPrefix overrides the key namespace
func WithKeyPrefix(prefix string) RedisCatalogStoreOption {
	return func(s *RedisCatalogStore) {
		s.prefix = prefix
	}
}

// WithStoreLogger sets the logger
func WithStoreLogger(logger *zap.Logger) RedisCatalogStoreOption {
	return func(s *RedisCatalogStore) {
		s.logger = logger
	}
}

// NewRedisCatalogStore connects to Redis and verifies the connection
func NewRedisCatalogStore(ctx context.Context, opts *redis.Options, storeOpts ...RedisCatalogStoreOption) (*RedisCatalogStore, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := NewRedisCatalogStoreWithClient(client, storeOpts...)
	s.ownsClient = true
	return s, nil
}

// NewRedisCatalogStoreWithClient wraps an existing client; the caller keeps ownership
func NewRedisCatalogStoreWithClient(client *redis.Client, opts ...RedisCatalogStoreOption) *RedisCatalogStore {
	s := &RedisCatalogStore{
		client: client,
		prefix: defaultKeyPrefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements CatalogStore. Undecodable entries are deleted and reported as a miss.
func (s *RedisCatalogStore) Get(ctx context.Context, key string) (checklist.Catalog, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get catalog from cache: %w", err)
	}

	var catalog checklist.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		s.logger.Warn("Dropping corrupted catalog cache entry", zap.String("key", key), zap.Error(err))
		_ = s.client.Del(ctx, s.prefix+key).Err()
		return nil, false, nil
	}
	return catalog, true, nil
}

// Set implements CatalogStore
func (s *RedisCatalogStore) Set(ctx context.Context, key string, catalog checklist.Catalog, ttl time.Duration) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set catalog in cache: %w", err)
	}
	return nil
}

// InvalidateAll deletes every key under the store prefix
func (s *RedisCatalogStore) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan catalog keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete catalog keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the client if the store created it
func (s *RedisCatalogStore) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}
