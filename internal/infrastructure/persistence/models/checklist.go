package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablegrowth/backend/internal/domain/checklist"
)

// CategoryModel is the persistence model for a checklist category
type CategoryModel struct {
	ID          string                 `gorm:"type:varchar(64);primaryKey"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	Type        checklist.CategoryType `gorm:"type:varchar(20);not null;index"`
	Icon        string                 `gorm:"type:varchar(64)"`
	Description string                 `gorm:"type:text"`
	SortOrder   int                    `gorm:"not null"`
	Timestamps
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "checklist_categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() checklist.Category {
	return checklist.Category{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Icon:        m.Icon,
		Description: m.Description,
		SortOrder:   m.SortOrder,
	}
}

// CategoryModelFromDomain converts a domain Category
func CategoryModelFromDomain(c checklist.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Icon:        c.Icon,
		Description: c.Description,
		SortOrder:   c.SortOrder,
	}
}

// ItemModel is the persistence model for a checklist item
type ItemModel struct {
	ID           string  `gorm:"type:varchar(64);primaryKey"`
	CategoryID   string  `gorm:"type:varchar(64);not null;index"`
	Title        string  `gorm:"type:varchar(200);not null"`
	Description  string  `gorm:"type:text"`
	IsCritical   bool    `gorm:"not null"`
	ExternalLink *string `gorm:"type:varchar(500)"`
	LinkText     *string `gorm:"type:varchar(100)"`
	SortOrder    int     `gorm:"not null"`
	Timestamps
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "checklist_items"
}

// ToDomain converts the model to a domain Item
func (m *ItemModel) ToDomain() checklist.Item {
	return checklist.Item{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Title:        m.Title,
		Description:  m.Description,
		IsCritical:   m.IsCritical,
		ExternalLink: m.ExternalLink,
		LinkText:     m.LinkText,
		SortOrder:    m.SortOrder,
	}
}

// ItemModelFromDomain converts a domain Item
func ItemModelFromDomain(i checklist.Item) *ItemModel {
	return &ItemModel{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		Title:        i.Title,
		Description:  i.Description,
		IsCritical:   i.IsCritical,
		ExternalLink: i.ExternalLink,
		LinkText:     i.LinkText,
		SortOrder:    i.SortOrder,
	}
}

// ItemStatusModel is the persisted status of one item for one tenant.
// (tenant_id, item_id) is the primary key, so at most one row exists per pair.
type ItemStatusModel struct {
	TenantID  uuid.UUID            `gorm:"type:uuid;primaryKey"`
	ItemID    string               `gorm:"type:varchar(64);primaryKey"`
	Status    checklist.ItemStatus `gorm:"type:varchar(20);not null"`
	Notes     *string              `gorm:"type:text"`
	UpdatedAt time.Time            `gorm:"not null;autoUpdateTime:false"`
	CreatedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemStatusModel) TableName() string {
	return "item_statuses"
}

// ToDomain converts the model to a domain StatusRecord
func (m *ItemStatusModel) ToDomain() checklist.StatusRecord {
	return checklist.StatusRecord{
		TenantID:  m.TenantID,
		ItemID:    m.ItemID,
		Status:    m.Status,
		Notes:     m.Notes,
		UpdatedAt: m.UpdatedAt,
	}
}

// ItemStatusModelFromDomain converts a domain StatusRecord
func ItemStatusModelFromDomain(r *checklist.StatusRecord) *ItemStatusModel {
	return &ItemStatusModel{
		TenantID:  r.TenantID,
		ItemID:    r.ItemID,
		Status:    r.Status,
		Notes:     r.Notes,
		UpdatedAt: r.UpdatedAt,
	}
}
