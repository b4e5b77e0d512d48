package cli

import (
	"fmt"

	"worktracker/internal/cli/formatter"
	"worktracker/internal/export"
	"worktracker/internal/worklog"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"print", "ls"},
		Short:   "Show all work logs, most recent first, with total pay",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Work Logs"))
			fmt.Fprint(out, formatter.RenderLogTable(app.Store.List(), app.Store.TotalPay(), app.loc()))
			return nil
		},
	}
}

func newTotalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the total pay across all work logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), worklog.FormatMoney(app.Store.TotalPay()))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var dir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all work logs as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout {
				return app.Store.ExportCSV(cmd.OutOrStdout(), app.loc())
			}
			if dir == "" {
				dir = app.ExportDir
			}
			if dir == "" {
				dir = "."
			}
			path, err := export.WriteFile(dir, app.now(), app.Store.List(), app.loc())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Exported %d work logs to %s", app.Store.Len(), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the CSV file into (default from config)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the CSV document to stdout instead of a file")
	return cmd
}
