package persistence

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/domain/shared"
)

func newStatusRecord(t *testing.T, tenantID uuid.UUID, itemID string, status checklist.ItemStatus, notes *string, at time.Time) *checklist.StatusRecord {
	t.Helper()
	rec, err := checklist.NewStatusRecord(tenantID, itemID, status, notes, at)
	require.NoError(t, err)
	return rec
}

func TestGormStatusRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("insert then overwrite keeps one row", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		repo := NewGormStatusRepository(db.DB)
		tenantID := uuid.New()
		first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		require.NoError(t, repo.Upsert(ctx, newStatusRecord(t, tenantID, "gbp", checklist.StatusInProgress, strPtr("started"), first)))
		require.NoError(t, repo.Upsert(ctx, newStatusRecord(t, tenantID, "gbp", checklist.StatusCompleted, nil, first.Add(time.Hour))))

		rec, err := repo.Find(ctx, tenantID, "gbp")
		require.NoError(t, err)
		assert.Equal(t, checklist.StatusCompleted, rec.Status)
		assert.Nil(t, rec.Notes)
		assert.True(t, rec.UpdatedAt.Equal(first.Add(time.Hour)))

		var count int64
		require.NoError(t, db.DB.Table("item_statuses").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown item ids are stored", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		repo := NewGormStatusRepository(db.DB)
		tenantID := uuid.New()

		require.NoError(t, repo.Upsert(ctx, newStatusRecord(t, tenantID, "not-in-catalog", checklist.StatusCompleted, nil, time.Now().UTC())))

		_, err := repo.Find(ctx, tenantID, "not-in-catalog")
		assert.NoError(t, err)
	})

	t.Run("concurrent writes to one key leave one row", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		repo := NewGormStatusRepository(db.DB)
		tenantID := uuid.New()
		statuses := checklist.AllStatuses()

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rec, _ := checklist.NewStatusRecord(tenantID, "gbp", statuses[i%len(statuses)], nil, time.Now().UTC())
				assert.NoError(t, repo.Upsert(ctx, rec))
			}(i)
		}
		wg.Wait()

		set, err := repo.ListForTenant(ctx, tenantID)
		require.NoError(t, err)
		require.Len(t, set, 1)
		assert.True(t, set["gbp"].Status.IsValid())
	})
}

func TestGormStatusRepository_Find(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormStatusRepository(db.DB)

	_, err := repo.Find(context.Background(), uuid.New(), "gbp")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStatusRepository_ListForTenant(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDatabase(t)
	repo := NewGormStatusRepository(db.DB)
	tenantA, tenantB := uuid.New(), uuid.New()
	now := time.Now().UTC()

	require.NoError(t, repo.Upsert(ctx, newStatusRecord(t, tenantA, "gbp", checklist.StatusCompleted, nil, now)))
	require.NoError(t, repo.Upsert(ctx, newStatusRecord(t, tenantA, "website", checklist.StatusNotApplicable, strPtr("no budget"), now)))
	require.NoError(t, repo.Upsert(ctx, newStatusRecord(t, tenantB, "gbp", checklist.StatusInProgress, nil, now)))

	setA, err := repo.ListForTenant(ctx, tenantA)
	require.NoError(t, err)
	assert.Len(t, setA, 2)
	assert.Equal(t, checklist.StatusCompleted, setA.StatusOf("gbp"))
	require.NotNil(t, setA["website"].Notes)
	assert.Equal(t, "no budget", *setA["website"].Notes)

	setB, err := repo.ListForTenant(ctx, tenantB)
	require.NoError(t, err)
	assert.Equal(t, checklist.StatusInProgress, setB.StatusOf("gbp"))
	assert.Equal(t, checklist.StatusPending, setB.StatusOf("website"))

	empty, err := repo.ListForTenant(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormStatusRepository_PostgresQueries(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("upsert is a single ON CONFLICT statement", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormStatusRepository(db.DB)
		at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		mock.ExpectExec(`INSERT INTO "item_statuses" .* `+regexp.QuoteMeta(
			`ON CONFLICT ("tenant_id","item_id") DO UPDATE SET "status"="excluded"."status","notes"="excluded"."notes","updated_at"="excluded"."updated_at"`)).
			WithArgs(tenantID, "gbp", "completed", sqlmock.AnyArg(), at, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(ctx, newStatusRecord(t, tenantID, "gbp", checklist.StatusCompleted, nil, at))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find maps driver errors to store errors", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormStatusRepository(db.DB)

		mock.ExpectQuery(`SELECT \* FROM "item_statuses" WHERE tenant_id = \$1 AND item_id = \$2 LIMIT \$3`).
			WithArgs(tenantID, "gbp", 1).
			WillReturnError(errors.New("relation does not exist"))

		_, err := repo.Find(ctx, tenantID, "gbp")

		var storeErr *shared.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "find status", storeErr.Op)
		assert.False(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("upsert failure is a store error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormStatusRepository(db.DB)

		mock.ExpectExec(`INSERT INTO "item_statuses"`).WillReturnError(errors.New("disk full"))

		err := repo.Upsert(ctx, newStatusRecord(t, tenantID, "gbp", checklist.StatusPending, nil, time.Now().UTC()))

		var storeErr *shared.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}
