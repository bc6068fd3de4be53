package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/domain/shared"
)

func strPtr(s string) *string { return &s }

// seedCatalog returns a small two-type catalog with deliberately shuffled sort orders
func seedCatalog() checklist.Catalog {
	return checklist.Catalog{
		{
			Category: checklist.Category{ID: "social", Name: "Social", Type: checklist.CategoryTypeOngoing, SortOrder: 3},
			Items: []checklist.Item{
				{ID: "instagram", CategoryID: "social", Title: "Post on Instagram", SortOrder: 1},
			},
		},
		{
			Category: checklist.Category{ID: "presence", Name: "Online Presence", Type: checklist.CategoryTypeFoundational, Icon: "globe", SortOrder: 1},
			Items: []checklist.Item{
				{ID: "website", CategoryID: "presence", Title: "Launch a website", IsCritical: true, SortOrder: 2},
				{
					ID: "gbp", CategoryID: "presence", Title: "Claim Google Business Profile", IsCritical: true, SortOrder: 1,
					ExternalLink: strPtr("https://business.google.com"), LinkText: strPtr("Open"),
				},
			},
		},
		{
			Category: checklist.Category{ID: "ordering", Name: "Ordering", Type: checklist.CategoryTypeFoundational, SortOrder: 2},
			Items:    []checklist.Item{},
		},
	}
}

func newSeededCatalogRepository(t *testing.T) *GormCatalogRepository {
	t.Helper()
	db := newSQLiteDatabase(t)
	repo := NewGormCatalogRepository(db.DB)
	require.NoError(t, repo.SeedCatalog(context.Background(), seedCatalog()))
	return repo
}

func TestGormCatalogRepository_ListCategories(t *testing.T) {
	ctx := context.Background()
	repo := newSeededCatalogRepository(t)

	t.Run("orders by sort order", func(t *testing.T) {
		cats, err := repo.ListCategories(ctx, nil)
		require.NoError(t, err)
		require.Len(t, cats, 3)
		assert.Equal(t, []string{"presence", "ordering", "social"}, []string{cats[0].ID, cats[1].ID, cats[2].ID})
		assert.Equal(t, "globe", cats[0].Icon)
	})

	t.Run("filters by type", func(t *testing.T) {
		ongoing := checklist.CategoryTypeOngoing
		cats, err := repo.ListCategories(ctx, &ongoing)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "social", cats[0].ID)
	})
}

func TestGormCatalogRepository_ListItems(t *testing.T) {
	ctx := context.Background()
	repo := newSeededCatalogRepository(t)

	t.Run("orders items and keeps links", func(t *testing.T) {
		items, err := repo.ListItems(ctx, "presence")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "gbp", items[0].ID)
		require.NotNil(t, items[0].ExternalLink)
		assert.Equal(t, "https://business.google.com", *items[0].ExternalLink)
		assert.Nil(t, items[1].ExternalLink)
	})

	t.Run("empty category returns empty slice", func(t *testing.T) {
		items, err := repo.ListItems(ctx, "ordering")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		_, err := repo.ListItems(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCatalogRepository_ListCategoriesWithItems(t *testing.T) {
	ctx := context.Background()
	repo := newSeededCatalogRepository(t)

	catalog, err := repo.ListCategoriesWithItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, catalog, 3)

	assert.Equal(t, "presence", catalog[0].Category.ID)
	assert.Equal(t, []string{"gbp", "website"}, []string{catalog[0].Items[0].ID, catalog[0].Items[1].ID})
	assert.NotNil(t, catalog[1].Items)
	assert.Empty(t, catalog[1].Items)
	assert.Len(t, catalog[2].Items, 1)

	foundational := checklist.CategoryTypeFoundational
	filtered, err := repo.ListCategoriesWithItems(ctx, &foundational)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	assert.Len(t, filtered.Items(), 2)
}

func TestGormCatalogRepository_FindItem(t *testing.T) {
	ctx := context.Background()
	repo := newSeededCatalogRepository(t)

	item, err := repo.FindItem(ctx, "website")
	require.NoError(t, err)
	assert.Equal(t, "presence", item.CategoryID)
	assert.True(t, item.IsCritical)

	_, err = repo.FindItem(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCatalogRepository_SeedCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("reseeding overwrites by id", func(t *testing.T) {
		repo := newSeededCatalogRepository(t)

		updated := seedCatalog()
		updated[1].Items[0].Title = "Build a website"
		require.NoError(t, repo.SeedCatalog(ctx, updated))

		item, err := repo.FindItem(ctx, "website")
		require.NoError(t, err)
		assert.Equal(t, "Build a website", item.Title)

		cats, err := repo.ListCategories(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, cats, 3)
	})

	t.Run("invalid catalog writes nothing", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		repo := NewGormCatalogRepository(db.DB)

		bad := seedCatalog()
		bad[0].Items[0].CategoryID = "presence"

		err := repo.SeedCatalog(ctx, bad)
		assert.ErrorIs(t, err, shared.ErrValidation)

		cats, err := repo.ListCategories(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, cats)
	})
}

func TestGormCatalogRepository_StoreErrors(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormCatalogRepository(db.DB)

	mock.ExpectQuery(`SELECT \* FROM "checklist_items" WHERE id = \$1 LIMIT \$2`).
		WithArgs("gbp", 1).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindItem(context.Background(), "gbp")

	var storeErr *shared.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "find item", storeErr.Op)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCatalogRepository_ListCategoriesQuery(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormCatalogRepository(db.DB)

	mock.ExpectQuery(`SELECT \* FROM "checklist_categories" WHERE type = \$1 ORDER BY sort_order ASC, id ASC`).
		WithArgs("foundational").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "sort_order"}).
			AddRow("presence", "Online Presence", "foundational", 1))

	foundational := checklist.CategoryTypeFoundational
	cats, err := repo.ListCategories(context.Background(), &foundational)

	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, checklist.CategoryTypeFoundational, cats[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
