package cli

import (
	"os"
	"time"

	"worktracker/internal/store"
	"worktracker/internal/worklog"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds what the commands operate on.
type App struct {
	Store     *store.Store
	Location  *time.Location
	ExportDir string

	// Now defaults to time.Now.
	Now func() time.Time
	// SaveDefaults, if set, keeps session defaults edited in the terminal UI.
	SaveDefaults func(worklog.Defaults) error
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) loc() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

// NewRootCmd creates the top-level "worktracker" command and registers all
// subcommands against the provided App. With no subcommand it opens the
// terminal UI when attached to a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "worktracker",
		Short:         "Track work sessions, pay, and CSV exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive() {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app)
		},
	}

	root.AddCommand(
		newAddCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newListCmd(app),
		newTotalCmd(app),
		newExportCmd(app),
		newTUICmd(app),
	)

	return root
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
