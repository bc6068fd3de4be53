package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/domain/shared"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStatusRepository implements checklist.StatusRepository using GORM.
// It does not check that item IDs exist in the catalog.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GormStatusRepository
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// Find returns the record for (tenantID, itemID)
func (r *GormStatusRepository) Find(ctx context.Context, tenantID uuid.UUID, itemID string) (*checklist.StatusRecord, error) {
	var row models.ItemStatusModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id = ?", tenantID, itemID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError("find status", err)
	}
	rec := row.ToDomain()
	return &rec, nil
}

// ListForTenant returns all of a tenant's records keyed by item ID
func (r *GormStatusRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID) (checklist.StatusSet, error) {
	var rows []models.ItemStatusModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&rows).Error; err != nil {
		return nil, shared.NewStoreError("list statuses", err)
	}

	set := make(checklist.StatusSet, len(rows))
	for i := range rows {
		set[rows[i].ItemID] = rows[i].ToDomain()
	}
	return set, nil
}

// Upsert inserts the record or overwrites status, notes and updated_at of
// the existing row in a single statement
func (r *GormStatusRepository) Upsert(ctx context.Context, record *checklist.StatusRecord) error {
	row := models.ItemStatusModelFromDomain(record)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "notes", "updated_at"}),
	}).Create(row).Error; err != nil {
		return shared.NewStoreError("upsert status", err)
	}
	return nil
}
