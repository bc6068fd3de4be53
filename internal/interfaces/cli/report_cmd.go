package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newScoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show a tenant's health score",
		Args:  cobra.NoArgs,
	}
	tenant := tenantFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		score, err := app.Service.GetScore(cmd.Context(), tenantID)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), RenderScore(score))
		return nil
	}
	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show score, revenue impact and next steps for a tenant",
		Args:  cobra.NoArgs,
	}
	tenant := tenantFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		dashboard, err := app.Service.GetDashboard(cmd.Context(), tenantID)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), RenderDashboard(dashboard))
		return nil
	}
	return cmd
}

func newTokenCmd(app *App) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		Args:  cobra.NoArgs,
	}
	tenant := tenantFlag(cmd)
	cmd.Flags().StringVar(&subject, "subject", "readinessctl", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		if ttl <= 0 {
			return fmt.Errorf("ttl must be positive, got %s", ttl)
		}
		token, err := app.Tokens.IssueToken(tenantID, subject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	}
	return cmd
}
