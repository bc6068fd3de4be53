package checklist

import "math"

// CategoryProgressResult is the completion of a single category
type CategoryProgressResult struct {
	CategoryID string `json:"category_id"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// TypeProgressResult aggregates completion over every category of one type
type TypeProgressResult struct {
	Type                         CategoryType `json:"type"`
	TotalItems                   int          `json:"total_items"`
	CompletedItems               int          `json:"completed_items"`
	CompletionPercentage         int          `json:"completion_percentage"`
	CriticalItems                int          `json:"critical_items"`
	CompletedCriticalItems       int          `json:"completed_critical_items"`
	CriticalCompletionPercentage int          `json:"critical_completion_percentage"`
}

// Percentage returns part/total as a whole percentage rounded to the nearest
// integer. A zero total yields 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// CategoryProgress counts completed items in one category
func CategoryProgress(category CategoryWithItems, statuses StatusSet) CategoryProgressResult {
	completed := 0
	for _, item := range category.Items {
		if statuses.IsCompleted(item.ID) {
			completed++
		}
	}
	total := len(category.Items)
	return CategoryProgressResult{
		CategoryID: category.ID,
		Completed:  completed,
		Total:      total,
		Percentage: Percentage(completed, total),
	}
}

// TypeProgress aggregates completion across every category of the given type,
// including the critical subset
func TypeProgress(categoryType CategoryType, catalog Catalog, statuses StatusSet) TypeProgressResult {
	result := TypeProgressResult{Type: categoryType}

	for _, category := range catalog {
		if category.Type != categoryType {
			continue
		}
		for _, item := range category.Items {
			done := statuses.IsCompleted(item.ID)
			result.TotalItems++
			if done {
				result.CompletedItems++
			}
			if item.IsCritical {
				result.CriticalItems++
				if done {
					result.CompletedCriticalItems++
				}
			}
		}
	}

	result.CompletionPercentage = Percentage(result.CompletedItems, result.TotalItems)
	result.CriticalCompletionPercentage = Percentage(result.CompletedCriticalItems, result.CriticalItems)
	return result
}

// ProgressByType computes TypeProgress for each requested type. With no
// types given, every known type is computed.
func ProgressByType(catalog Catalog, statuses StatusSet, types ...CategoryType) map[CategoryType]TypeProgressResult {
	if len(types) == 0 {
		types = AllCategoryTypes()
	}
	out := make(map[CategoryType]TypeProgressResult, len(types))
	for _, t := range types {
		out[t] = TypeProgress(t, catalog, statuses)
	}
	return out
}
