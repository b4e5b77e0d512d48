package cli

import (
	"fmt"
	"strconv"

	"worktracker/internal/cli/formatter"
	"worktracker/internal/worklog"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a work session by hand",
		Long: "Record a work session by hand. Date defaults to today, times to 09:00-17:00,\n" +
			"and company, employee and rate to the configured session defaults.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Store
			d := s.Defaults()

			form := worklog.NewEntryForm(app.now().In(app.loc()))
			form.Rate = strconv.FormatFloat(d.HourlyRate, 'f', -1, 64)
			form.Company = d.CompanyName
			form.Employee = d.EmployeeName
			flags.apply(cmd.Flags(), &form)

			start, end, rate, err := form.ParseManual(app.loc())
			if err != nil {
				return err
			}

			d.CompanyName = form.Company
			d.EmployeeName = form.Employee
			if err := s.SetDefaults(d); err != nil {
				return err
			}

			rec, err := s.AddManual(cmd.Context(), start, end, rate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Added "+formatter.RecordSummary(rec, app.loc())))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a recorded session",
		Long:  "Change a recorded session. Flags that are not given keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Store.Resolve(args[0])
			if err != nil {
				return err
			}

			form := worklog.EntryFromRecord(rec, app.loc())
			flags.apply(cmd.Flags(), &form)

			fields, err := form.ParseEdit(app.loc())
			if err != nil {
				return err
			}
			updated, err := app.Store.Update(cmd.Context(), rec.ID, fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated "+formatter.RecordSummary(updated, app.loc())))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a recorded session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Store.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.Delete(cmd.Context(), rec.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted "+formatter.ShortID(rec.ID)))
			return nil
		},
	}
}
