package checklist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tablegrowth/backend/internal/domain/shared"
)

// CategoryType is the lifecycle type of a checklist category
type CategoryType string

const (
	CategoryTypeFoundational CategoryType = "foundational"
	CategoryTypeOngoing      CategoryType = "ongoing"
)

// AllCategoryTypes returns the category types in scoring order
func AllCategoryTypes() []CategoryType {
	return []CategoryType{CategoryTypeFoundational, CategoryTypeOngoing}
}

// IsValid returns true if the type is one of the known lifecycle types
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeFoundational || t == CategoryTypeOngoing
}

// String returns the string representation of the category type
func (t CategoryType) String() string {
	return string(t)
}

// ParseCategoryType parses a category type, case-insensitive
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewValidationError(fmt.Sprintf("invalid category type %q: must be foundational or ongoing", s))
	}
	return t, nil
}

// Category groups checklist items. Categories are seeded once and never
// mutated at runtime.
type Category struct {
	ID          string
	Name        string
	Type        CategoryType
	Icon        string
	Description string
	SortOrder   int
}

// Item is a single marketing task. IsCritical is fixed at catalog load.
type Item struct {
	ID           string
	CategoryID   string
	Title        string
	Description  string
	IsCritical   bool
	ExternalLink *string
	LinkText     *string
	SortOrder    int
}

// CategoryWithItems is a category together with its ordered items
type CategoryWithItems struct {
	Category
	Items []Item
}

// Catalog is the ordered set of categories and items that make up the checklist
type Catalog []CategoryWithItems

// OfType returns the categories of the given type, preserving order
func (c Catalog) OfType(t CategoryType) Catalog {
	out := make(Catalog, 0, len(c))
	for _, cat := range c {
		if cat.Type == t {
			out = append(out, cat)
		}
	}
	return out
}

// Items returns every item in catalog order
func (c Catalog) Items() []Item {
	var items []Item
	for _, cat := range c {
		items = append(items, cat.Items...)
	}
	return items
}

// FindItem looks up an item and its owning category by item ID
func (c Catalog) FindItem(itemID string) (Item, Category, bool) {
	for _, cat := range c {
		for _, item := range cat.Items {
			if item.ID == itemID {
				return item, cat.Category, true
			}
		}
	}
	return Item{}, Category{}, false
}

// Sort orders categories and their items by SortOrder ascending. The sort
// is stable so equal sort orders keep their input order.
func (c Catalog) Sort() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].SortOrder < c[j].SortOrder
	})
	for i := range c {
		SortItems(c[i].Items)
	}
}

// SortCategories orders categories by SortOrder ascending, stable
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
}

// SortItems orders items by SortOrder ascending, stable
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortOrder < items[j].SortOrder
	})
}

// Validate checks the catalog's referential invariants: unique IDs, exactly
// one valid type per category, and every item belonging to its enclosing category.
func (c Catalog) Validate() error {
	categoryIDs := make(map[string]struct{}, len(c))
	itemIDs := make(map[string]struct{})

	for _, cat := range c {
		if cat.ID == "" {
			return shared.NewValidationError("category id cannot be empty")
		}
		if _, dup := categoryIDs[cat.ID]; dup {
			return shared.NewValidationError(fmt.Sprintf("duplicate category id %q", cat.ID))
		}
		categoryIDs[cat.ID] = struct{}{}

		if !cat.Type.IsValid() {
			return shared.NewValidationError(fmt.Sprintf("category %q has invalid type %q", cat.ID, cat.Type))
		}
		if strings.TrimSpace(cat.Name) == "" {
			return shared.NewValidationError(fmt.Sprintf("category %q has no name", cat.ID))
		}

		for _, item := range cat.Items {
			if item.ID == "" {
				return shared.NewValidationError(fmt.Sprintf("category %q contains an item with an empty id", cat.ID))
			}
			if _, dup := itemIDs[item.ID]; dup {
				return shared.NewValidationError(fmt.Sprintf("duplicate item id %q", item.ID))
			}
			itemIDs[item.ID] = struct{}{}

			if item.CategoryID != cat.ID {
				return shared.NewValidationError(fmt.Sprintf("item %q references category %q but is listed under %q", item.ID, item.CategoryID, cat.ID))
			}
			if strings.TrimSpace(item.Title) == "" {
				return shared.NewValidationError(fmt.Sprintf("item %q has no title", item.ID))
			}
		}
	}
	return nil
}
