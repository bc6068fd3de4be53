package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tablegrowth/backend/internal/domain/checklist"
)

// CatalogStore caches catalog snapshots by key. A miss returns (nil, false, nil).
type CatalogStore interface {
	Get(ctx context.Context, key string) (checklist.Catalog, bool, error)
	Set(ctx context.Context, key string, catalog checklist.Catalog, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e cacheEntry[T]) isExpired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// InMemoryCatalogStore is a process-local CatalogStore. Expired entries are
// dropped lazily on read.
type InMemoryCatalogStore struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[checklist.Catalog]
	now     func() time.Time
}

// NewInMemoryCatalogStore creates an empty in-memory store
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		entries: make(map[string]cacheEntry[checklist.Catalog]),
		now:     time.Now,
	}
}

// Get implements CatalogStore
func (s *InMemoryCatalogStore) Get(_ context.Context, key string) (checklist.Catalog, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if entry.isExpired(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return cloneCatalog(entry.value), true, nil
}

// Set implements CatalogStore
func (s *InMemoryCatalogStore) Set(_ context.Context, key string, catalog checklist.Catalog, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = cacheEntry[checklist.Catalog]{
		value:     cloneCatalog(catalog),
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// InvalidateAll implements CatalogStore
func (s *InMemoryCatalogStore) InvalidateAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	return nil
}

// Close implements CatalogStore
func (s *InMemoryCatalogStore) Close() error {
	return nil
}

// cloneCatalog copies the category and item slices so callers can sort or
// mutate the result without touching the cached value
func cloneCatalog(c checklist.Catalog) checklist.Catalog {
	if c == nil {
		return nil
	}
	out := make(checklist.Catalog, len(c))
	for i, cat := range c {
		out[i] = checklist.CategoryWithItems{
			Category: cat.Category,
			Items:    append([]checklist.Item{}, cat.Items...),
		}
	}
	return out
}
