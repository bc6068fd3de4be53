package checklist

import (
	"context"

	"github.com/google/uuid"
)

// CatalogRepository defines read access to the checklist catalog
type CatalogRepository interface {
	// ListCategories returns categories ordered by sort order, optionally filtered by type
	ListCategories(ctx context.Context, categoryType *CategoryType) ([]Category, error)

	// ListItems returns a category's items ordered by sort order.
	// Returns shared.ErrNotFound for an unknown category.
	ListItems(ctx context.Context, categoryID string) ([]Item, error)

	// ListCategoriesWithItems returns the ordered catalog, optionally filtered by type
	ListCategoriesWithItems(ctx context.Context, categoryType *CategoryType) (Catalog, error)

	// FindItem finds a single item by ID. Returns shared.ErrNotFound if absent.
	FindItem(ctx context.Context, itemID string) (*Item, error)
}

// CatalogSeeder writes catalog definitions. It is only used by seeding and
// is kept apart from the read path.
type CatalogSeeder interface {
	// SeedCatalog upserts every category and item by ID
	SeedCatalog(ctx context.Context, catalog Catalog) error
}

// StatusRepository defines persistence for per-tenant item status
type StatusRepository interface {
	// Find returns the record for (tenantID, itemID), or shared.ErrNotFound
	Find(ctx context.Context, tenantID uuid.UUID, itemID string) (*StatusRecord, error)

	// ListForTenant returns every record of a tenant keyed by item ID
	ListForTenant(ctx context.Context, tenantID uuid.UUID) (StatusSet, error)

	// Upsert inserts or fully overwrites the record for its (tenant, item) key
	Upsert(ctx context.Context, record *StatusRecord) error
}
