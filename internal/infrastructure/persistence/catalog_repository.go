package persistence

import (
	"context"
	"errors"

	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/domain/shared"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// catalogOrder is the deterministic catalog order: sort order, then id for ties
const catalogOrder = "sort_order ASC, id ASC"

// GormCatalogRepository implements checklist.CatalogRepository and
// checklist.CatalogSeeder using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListCategories returns categories ordered by sort order
func (r *GormCatalogRepository) ListCategories(ctx context.Context, categoryType *checklist.CategoryType) ([]checklist.Category, error) {
	var rows []models.CategoryModel
	query := r.db.WithContext(ctx).Order(catalogOrder)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewStoreError("list categories", err)
	}

	categories := make([]checklist.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

// ListItems returns a category's items ordered by sort order
func (r *GormCatalogRepository) ListItems(ctx context.Context, categoryID string) ([]checklist.Item, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", categoryID).
		Count(&count).Error; err != nil {
		return nil, shared.NewStoreError("find category", err)
	}
	if count == 0 {
		return nil, shared.ErrNotFound
	}

	var rows []models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order(catalogOrder).
		Find(&rows).Error; err != nil {
		return nil, shared.NewStoreError("list items", err)
	}

	items := make([]checklist.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, nil
}

// ListCategoriesWithItems returns the ordered catalog in two queries
func (r *GormCatalogRepository) ListCategoriesWithItems(ctx context.Context, categoryType *checklist.CategoryType) (checklist.Catalog, error) {
	categories, err := r.ListCategories(ctx, categoryType)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return checklist.Catalog{}, nil
	}

	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	var rows []models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("category_id IN ?", ids).
		Order(catalogOrder).
		Find(&rows).Error; err != nil {
		return nil, shared.NewStoreError("list items", err)
	}

	byCategory := make(map[string][]checklist.Item, len(categories))
	for i := range rows {
		item := rows[i].ToDomain()
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	catalog := make(checklist.Catalog, len(categories))
	for i, c := range categories {
		items := byCategory[c.ID]
		if items == nil {
			items = []checklist.Item{}
		}
		catalog[i] = checklist.CategoryWithItems{Category: c, Items: items}
	}
	return catalog, nil
}

// FindItem finds a single item by ID
func (r *GormCatalogRepository) FindItem(ctx context.Context, itemID string) (*checklist.Item, error) {
	var row models.ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError("find item", err)
	}
	item := row.ToDomain()
	return &item, nil
}

// SeedCatalog upserts every category and item by ID in one transaction.
// Existing rows are overwritten; rows missing from the catalog are left alone.
func (r *GormCatalogRepository) SeedCatalog(ctx context.Context, catalog checklist.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cat := range catalog {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "type", "icon", "description", "sort_order", "updated_at"}),
			}).Create(models.CategoryModelFromDomain(cat.Category)).Error; err != nil {
				return err
			}

			if len(cat.Items) == 0 {
				continue
			}
			items := make([]*models.ItemModel, len(cat.Items))
			for i, item := range cat.Items {
				items[i] = models.ItemModelFromDomain(item)
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"category_id", "title", "description", "is_critical",
					"external_link", "link_text", "sort_order", "updated_at",
				}),
			}).Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shared.NewStoreError("seed catalog", err)
	}
	return nil
}
