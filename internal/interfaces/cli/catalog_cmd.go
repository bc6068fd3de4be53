package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
	"github.com/tablegrowth/backend/internal/domain/checklist"
)

func newSeedCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the checklist catalog",
		Long:  "Upsert the built-in checklist catalog, or the YAML catalog given with --file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var catalog checklist.Catalog
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading catalog: %w", err)
				}
				catalog, err = checklistapp.ParseCatalog(data)
				if err != nil {
					return fmt.Errorf("parsing catalog: %w", err)
				}
			} else {
				var err error
				catalog, err = checklistapp.DefaultCatalog()
				if err != nil {
					return err
				}
			}

			if err := app.Seeder.Seed(cmd.Context(), catalog); err != nil {
				return fmt.Errorf("seeding catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories, %d items\n", len(catalog), len(catalog.Items()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog file")
	return cmd
}

func newCatalogCmd(app *App) *cobra.Command {
	var categoryType string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show categories and items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *string
			if categoryType != "" {
				filter = &categoryType
			}
			categories, err := app.Service.ListCategoriesWithItems(cmd.Context(), filter, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderCatalog(categories))
			return nil
		},
	}
	cmd.Flags().StringVar(&categoryType, "type", "", "foundational or ongoing")
	return cmd
}
