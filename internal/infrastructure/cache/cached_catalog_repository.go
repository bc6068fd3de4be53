package cache

import (
	"context"
	"time"

	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// fullCatalogKey caches the unfiltered catalog; every read is served from it
const fullCatalogKey = "all"

// CatalogSource is what CachedCatalogRepository decorates
type CatalogSource interface {
	checklist.CatalogRepository
	checklist.CatalogSeeder
}

// CachedCatalogRepository serves catalog reads from a CatalogStore and falls
// back to the underlying repository on a miss or a cache failure. Seeding
// goes straight to the repository and invalidates the store.
type CachedCatalogRepository struct {
	next   CatalogSource
	store  CatalogStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCatalogRepository wraps next with store
func NewCachedCatalogRepository(next CatalogSource, store CatalogStore, ttl time.Duration, logger *zap.Logger) *CachedCatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCatalogRepository{next: next, store: store, ttl: ttl, logger: logger}
}

func (r *CachedCatalogRepository) catalog(ctx context.Context) (checklist.Catalog, error) {
	catalog, ok, err := r.store.Get(ctx, fullCatalogKey)
	if err != nil {
		r.logger.Warn("Catalog cache read failed", zap.Error(err))
	}
	if ok {
		return catalog, nil
	}

	catalog, err = r.next.ListCategoriesWithItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, fullCatalogKey, catalog, r.ttl); err != nil {
		r.logger.Warn("Catalog cache write failed", zap.Error(err))
	}
	return catalog, nil
}

// ListCategories implements checklist.CatalogRepository
func (r *CachedCatalogRepository) ListCategories(ctx context.Context, categoryType *checklist.CategoryType) ([]checklist.Category, error) {
	catalog, err := r.ListCategoriesWithItems(ctx, categoryType)
	if err != nil {
		return nil, err
	}
	categories := make([]checklist.Category, len(catalog))
	for i, c := range catalog {
		categories[i] = c.Category
	}
	return categories, nil
}

// ListItems implements checklist.CatalogRepository
func (r *CachedCatalogRepository) ListItems(ctx context.Context, categoryID string) ([]checklist.Item, error) {
	catalog, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range catalog {
		if c.ID == categoryID {
			return append([]checklist.Item{}, c.Items...), nil
		}
	}
	return nil, shared.ErrNotFound
}

// ListCategoriesWithItems implements checklist.CatalogRepository
func (r *CachedCatalogRepository) ListCategoriesWithItems(ctx context.Context, categoryType *checklist.CategoryType) (checklist.Catalog, error) {
	catalog, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}
	if categoryType != nil {
		return catalog.OfType(*categoryType), nil
	}
	return catalog, nil
}

// FindItem implements checklist.CatalogRepository
func (r *CachedCatalogRepository) FindItem(ctx context.Context, itemID string) (*checklist.Item, error) {
	catalog, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}
	item, _, ok := catalog.FindItem(itemID)
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

// SeedCatalog implements checklist.CatalogSeeder
func (r *CachedCatalogRepository) SeedCatalog(ctx context.Context, catalog checklist.Catalog) error {
	if err := r.next.SeedCatalog(ctx, catalog); err != nil {
		return err
	}
	if err := r.store.InvalidateAll(ctx); err != nil {
		r.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
	return nil
}
