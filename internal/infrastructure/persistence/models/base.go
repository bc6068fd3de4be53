package models

import "time"

// Timestamps are the bookkeeping columns shared by catalog tables
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// All returns every model managed by the readiness schema, in dependency order
func All() []any {
	return []any{
		&CategoryModel{},
		&ItemModel{},
		&ItemStatusModel{},
	}
}
