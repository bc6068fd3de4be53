package checklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tablegrowth/backend/internal/domain/shared"
)

// ItemStatus is the completion state of one item for one tenant.
// Any status may replace any other; there is no enforced transition graph.
type ItemStatus string

const (
	StatusPending       ItemStatus = "pending"
	StatusInProgress    ItemStatus = "in_progress"
	StatusCompleted     ItemStatus = "completed"
	StatusNotApplicable ItemStatus = "not_applicable"
)

// AllStatuses returns all valid status values
func AllStatuses() []ItemStatus {
	return []ItemStatus{StatusPending, StatusInProgress, StatusCompleted, StatusNotApplicable}
}

// IsValid returns true if the status is one of the four known values
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusNotApplicable:
		return true
	}
	return false
}

// IsCompleted returns true only for the completed status
func (s ItemStatus) IsCompleted() bool {
	return s == StatusCompleted
}

// String returns the string representation of the status
func (s ItemStatus) String() string {
	return string(s)
}

// ParseItemStatus parses a status value. Values are matched exactly, with no
// trimming or case folding; anything outside the enum is a validation error.
func ParseItemStatus(s string) (ItemStatus, error) {
	status := ItemStatus(s)
	if !status.IsValid() {
		return "", shared.NewValidationError(fmt.Sprintf("invalid status %q: must be one of pending, in_progress, completed, not_applicable", s))
	}
	return status, nil
}

// StatusRecord is the persisted status of one item for one tenant, keyed by
// (TenantID, ItemID). Writes are full overwrites.
type StatusRecord struct {
	TenantID  uuid.UUID
	ItemID    string
	Status    ItemStatus
	Notes     *string
	UpdatedAt time.Time
}

// NewStatusRecord builds a record for an upsert, validating the status
func NewStatusRecord(tenantID uuid.UUID, itemID string, status ItemStatus, notes *string, now time.Time) (*StatusRecord, error) {
	if !status.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("invalid status %q", status))
	}
	if strings.TrimSpace(itemID) == "" {
		return nil, shared.NewValidationError("item id cannot be empty")
	}
	return &StatusRecord{
		TenantID:  tenantID,
		ItemID:    itemID,
		Status:    status,
		Notes:     notes,
		UpdatedAt: now,
	}, nil
}

// PendingRecord is the implicit record for a (tenant, item) pair that has
// never been written. UpdatedAt is zero.
func PendingRecord(tenantID uuid.UUID, itemID string) StatusRecord {
	return StatusRecord{
		TenantID: tenantID,
		ItemID:   itemID,
		Status:   StatusPending,
	}
}

// IsPersisted returns false for implicit pending records
func (r StatusRecord) IsPersisted() bool {
	return !r.UpdatedAt.IsZero()
}

// SameState compares status and notes, ignoring UpdatedAt
func (r StatusRecord) SameState(other StatusRecord) bool {
	if r.TenantID != other.TenantID || r.ItemID != other.ItemID || r.Status != other.Status {
		return false
	}
	switch {
	case r.Notes == nil && other.Notes == nil:
		return true
	case r.Notes == nil || other.Notes == nil:
		return false
	default:
		return *r.Notes == *other.Notes
	}
}

// StatusSet maps item IDs to a tenant's status records
type StatusSet map[string]StatusRecord

// StatusOf returns the item's status; a missing record is pending
func (s StatusSet) StatusOf(itemID string) ItemStatus {
	if rec, ok := s[itemID]; ok {
		return rec.Status
	}
	return StatusPending
}

// IsCompleted returns true if the item's status is completed
func (s StatusSet) IsCompleted(itemID string) bool {
	return s.StatusOf(itemID).IsCompleted()
}
