package checklist

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/tablegrowth/backend/internal/domain/checklist"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Categories []categoryDef `yaml:"categories"`
}

type categoryDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Icon        string    `yaml:"icon"`
	Description string    `yaml:"description"`
	SortOrder   int       `yaml:"sort_order"`
	Items       []itemDef `yaml:"items"`
}

type itemDef struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Critical    bool    `yaml:"critical"`
	Link        *string `yaml:"link"`
	LinkText    *string `yaml:"link_text"`
	SortOrder   int     `yaml:"sort_order"`
}

// ParseCatalog decodes a YAML catalog definition and validates it. Items
// inherit the ID of the category they are listed under.
func ParseCatalog(data []byte) (checklist.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	catalog := make(checklist.Catalog, 0, len(file.Categories))
	for _, c := range file.Categories {
		t, err := checklist.ParseCategoryType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c.ID, err)
		}
		cat := checklist.CategoryWithItems{
			Category: checklist.Category{
				ID:          c.ID,
				Name:        c.Name,
				Type:        t,
				Icon:        c.Icon,
				Description: c.Description,
				SortOrder:   c.SortOrder,
			},
			Items: make([]checklist.Item, 0, len(c.Items)),
		}
		for _, i := range c.Items {
			cat.Items = append(cat.Items, checklist.Item{
				ID:           i.ID,
				CategoryID:   c.ID,
				Title:        i.Title,
				Description:  i.Description,
				IsCritical:   i.Critical,
				ExternalLink: i.Link,
				LinkText:     i.LinkText,
				SortOrder:    i.SortOrder,
			})
		}
		catalog = append(catalog, cat)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	catalog.Sort()
	return catalog, nil
}

// DefaultCatalog returns the built-in restaurant marketing catalog
func DefaultCatalog() (checklist.Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// CatalogSeeder loads a catalog definition into the catalog store
type CatalogSeeder struct {
	seeder checklist.CatalogSeeder
	logger *zap.Logger
}

// NewCatalogSeeder creates a new CatalogSeeder
func NewCatalogSeeder(seeder checklist.CatalogSeeder, logger *zap.Logger) *CatalogSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogSeeder{seeder: seeder, logger: logger}
}

// Seed upserts the given catalog, or the built-in one when catalog is nil
func (s *CatalogSeeder) Seed(ctx context.Context, catalog checklist.Catalog) error {
	if catalog == nil {
		var err error
		catalog, err = DefaultCatalog()
		if err != nil {
			return err
		}
	} else if err := catalog.Validate(); err != nil {
		return err
	}

	if err := s.seeder.SeedCatalog(ctx, catalog); err != nil {
		return err
	}

	s.logger.Info("checklist catalog seeded",
		zap.Int("categories", len(catalog)),
		zap.Int("items", len(catalog.Items())),
	)
	return nil
}
