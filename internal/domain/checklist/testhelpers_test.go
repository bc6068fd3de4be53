package checklist

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// buildCategory creates a category with n items, the first `critical` of which are critical
func buildCategory(id string, t CategoryType, n, critical int) CategoryWithItems {
	cat := CategoryWithItems{
		Category: Category{ID: id, Name: id, Type: t},
	}
	for i := 0; i < n; i++ {
		cat.Items = append(cat.Items, Item{
			ID:         fmt.Sprintf("%s-%d", id, i),
			CategoryID: id,
			Title:      fmt.Sprintf("Task %d", i),
			IsCritical: i < critical,
			SortOrder:  i,
		})
	}
	return cat
}

// completeItems returns a status set with the given items marked completed
func completeItems(tenantID uuid.UUID, itemIDs ...string) StatusSet {
	set := make(StatusSet, len(itemIDs))
	for _, id := range itemIDs {
		set[id] = StatusRecord{
			TenantID:  tenantID,
			ItemID:    id,
			Status:    StatusCompleted,
			UpdatedAt: time.Now(),
		}
	}
	return set
}
