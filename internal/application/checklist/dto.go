package checklist

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablegrowth/backend/internal/domain/checklist"
)

// SetStatusRequest represents a request to set the status of one item
type SetStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending in_progress completed not_applicable"`
	Notes  *string `json:"notes" binding:"omitempty,max=2000"`
}

// ItemResponse represents a checklist item in API responses. The status
// fields are only populated when the caller supplied a tenant.
type ItemResponse struct {
	ID              string     `json:"id"`
	CategoryID      string     `json:"category_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	IsCritical      bool       `json:"is_critical"`
	ExternalLink    *string    `json:"external_link"`
	LinkText        *string    `json:"link_text"`
	SortOrder       int        `json:"sort_order"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
	StatusUpdatedAt *time.Time `json:"status_updated_at"`
}

// CategoryResponse represents a category with its ordered items
type CategoryResponse struct {
	ID          string                            `json:"id"`
	Name        string                            `json:"name"`
	Type        string                            `json:"type"`
	Icon        string                            `json:"icon"`
	Description string                            `json:"description"`
	SortOrder   int                               `json:"sort_order"`
	Items       []ItemResponse                    `json:"items"`
	Progress    *checklist.CategoryProgressResult `json:"progress,omitempty"`
}

// StatusResponse is the view of one (tenant, item) status. UpdatedAt is nil
// for items that have never been written.
type StatusResponse struct {
	ItemID    string     `json:"item_id"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// StatusListEntry is a persisted status joined with its item and category
type StatusListEntry struct {
	StatusResponse
	ItemTitle    string `json:"item_title"`
	IsCritical   bool   `json:"is_critical"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
}

// ScoreResponse is the overall health score with its sub-scores
type ScoreResponse struct {
	OverallScore int                          `json:"overall_score"`
	Breakdown    checklist.ScoreBreakdown     `json:"breakdown"`
	Foundational checklist.TypeProgressResult `json:"foundational"`
	Ongoing      checklist.TypeProgressResult `json:"ongoing"`
}

// RecommendedItem is a next step suggested on the dashboard
type RecommendedItem struct {
	ItemID       string                  `json:"item_id"`
	Title        string                  `json:"title"`
	CategoryID   string                  `json:"category_id"`
	CategoryName string                  `json:"category_name"`
	IsCritical   bool                    `json:"is_critical"`
	Status       string                  `json:"status"`
	Bucket       checklist.RevenueBucket `json:"revenue_bucket"`
	WeeklyValue  decimal.Decimal         `json:"weekly_value"`
}

// DashboardResponse combines score, progress, revenue and next steps
type DashboardResponse struct {
	Score       ScoreResponse                                           `json:"score"`
	Progress    map[checklist.CategoryType]checklist.TypeProgressResult `json:"progress"`
	Revenue     checklist.RevenueImpactResult                           `json:"revenue"`
	NextItems   []RecommendedItem                                       `json:"next_items"`
	GeneratedAt time.Time                                               `json:"generated_at"`
}

// ToItemResponse converts a domain item without tenant status
func ToItemResponse(item checklist.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		Title:        item.Title,
		Description:  item.Description,
		IsCritical:   item.IsCritical,
		ExternalLink: item.ExternalLink,
		LinkText:     item.LinkText,
		SortOrder:    item.SortOrder,
	}
}

// ToItemResponses converts a list of domain items
func ToItemResponses(items []checklist.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ToItemResponse(item)
	}
	return out
}

// withStatus decorates an item response with the tenant's status
func (r ItemResponse) withStatus(rec checklist.StatusRecord) ItemResponse {
	status := rec.Status.String()
	r.Status = &status
	r.Notes = rec.Notes
	if rec.IsPersisted() {
		at := rec.UpdatedAt
		r.StatusUpdatedAt = &at
	}
	return r
}

// ToStatusResponse converts a status record
func ToStatusResponse(rec checklist.StatusRecord) StatusResponse {
	resp := StatusResponse{
		ItemID: rec.ItemID,
		Status: rec.Status.String(),
		Notes:  rec.Notes,
	}
	if rec.IsPersisted() {
		at := rec.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}

func toCategoryResponse(cat checklist.CategoryWithItems) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Type:        cat.Type.String(),
		Icon:        cat.Icon,
		Description: cat.Description,
		SortOrder:   cat.SortOrder,
		Items:       ToItemResponses(cat.Items),
	}
}
