package cli

import (
	"context"
	"time"

	tui "worktracker/internal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive work tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}
}

// runTUI runs the terminal UI until the user quits. A timer left running is
// stopped and recorded on the way out.
func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m := tui.NewModel(app.Store, tui.Options{
		Location:     app.loc(),
		ExportDir:    app.ExportDir,
		Now:          app.Now,
		SaveDefaults: app.SaveDefaults,
	})
	defer m.Close(ctx)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-ticker.C:
				p.Send(tui.MsgTick{})
			case <-done:
				return
			}
		}
	}()

	_, err := p.Run()
	return err
}
