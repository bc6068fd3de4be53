// Package cli implements readinessctl, the operator tool for the readiness
// catalog and tenant checklists.
package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
)

// TokenIssuer mints bearer tokens accepted by the API
type TokenIssuer interface {
	IssueToken(tenantID uuid.UUID, subject string, ttl time.Duration) (string, error)
}

// App holds what the commands operate on
type App struct {
	Service *checklistapp.Service
	Seeder  *checklistapp.CatalogSeeder
	Tokens  TokenIssuer
}

// NewRootCmd creates the readinessctl command tree
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "readinessctl",
		Short:         "Manage the marketing readiness checklist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSeedCmd(app),
		newCatalogCmd(app),
		newStatusCmd(app),
		newScoreCmd(app),
		newDashboardCmd(app),
		newTokenCmd(app),
	)
	return root
}

// tenantFlag registers a required --tenant flag and returns its parser
func tenantFlag(cmd *cobra.Command) func() (uuid.UUID, error) {
	var raw string
	cmd.Flags().StringVarP(&raw, "tenant", "t", "", "tenant id (uuid)")
	_ = cmd.MarkFlagRequired("tenant")
	return func() (uuid.UUID, error) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid tenant id %q: %w", raw, err)
		}
		return id, nil
	}
}
