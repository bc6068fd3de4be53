package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Read and write item statuses for a tenant",
	}
	cmd.AddCommand(
		newStatusGetCmd(app),
		newStatusSetCmd(app),
		newStatusResetCmd(app),
		newStatusListCmd(app),
	)
	return cmd
}

func newStatusGetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <item-id>",
		Short: "Show the status of one item",
		Args:  cobra.ExactArgs(1),
	}
	tenant := tenantFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		status, err := app.Service.GetStatus(cmd.Context(), tenantID, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), RenderStatus(status))
		return nil
	}
	return cmd
}

func newStatusSetCmd(app *App) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "set <item-id> <status>",
		Short: "Set an item status (pending, in_progress, completed, not_applicable)",
		Args:  cobra.ExactArgs(2),
	}
	tenant := tenantFlag(cmd)
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		req := checklistapp.SetStatusRequest{Status: args[1]}
		if cmd.Flags().Changed("notes") {
			req.Notes = &notes
		}
		status, err := app.Service.SetStatus(cmd.Context(), tenantID, args[0], req)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), RenderStatus(status))
		return nil
	}
	return cmd
}

func newStatusResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <item-id>",
		Short: "Put an item back to pending",
		Args:  cobra.ExactArgs(1),
	}
	tenant := tenantFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		status, err := app.Service.ResetStatus(cmd.Context(), tenantID, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), RenderStatus(status))
		return nil
	}
	return cmd
}

func newStatusListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every recorded status for a tenant",
		Args:  cobra.NoArgs,
	}
	tenant := tenantFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := tenant()
		if err != nil {
			return err
		}
		entries, err := app.Service.ListStatuses(cmd.Context(), tenantID)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), RenderStatuses(entries))
		return nil
	}
	return cmd
}
