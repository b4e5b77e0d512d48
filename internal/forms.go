package internal

import (
	stderrors "errors"

	"worktracker/internal/cli/formatter"
	"worktracker/internal/errors"
	"worktracker/internal/worklog"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// detailsInput backs the details form: the values applied to new records.
type detailsInput struct {
	Company  string
	Employee string
	Rate     string
}

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateRate reports rate problems inline while the form is open.
func validateRate(s string) error {
	if _, err := worklog.ParseRate(s); err != nil {
		return stderrors.New(errors.UserMessage(err))
	}
	return nil
}

func newDetailsForm(d *detailsInput, running bool) *huh.Form {
	rate := huh.NewInput().
		Title("Hourly Rate ($)").
		Value(&d.Rate).
		Validate(validateRate)
	if running {
		rate = rate.Description("Locked while the timer is running")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Company Name").Value(&d.Company),
			huh.NewInput().Title("Employee Name").Value(&d.Employee),
			rate,
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// newEntryForm builds the manual-entry form, or with names set, the edit
// dialog, which also carries company and employee.
func newEntryForm(e *worklog.EntryForm, names bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Date").Placeholder(worklog.DateLayout).Value(&e.Date),
		huh.NewInput().Title("Start Time").Placeholder(worklog.DefaultStart).Value(&e.Start),
		huh.NewInput().Title("End Time").Placeholder(worklog.DefaultEnd).Value(&e.End),
		huh.NewInput().Title("Hourly Rate ($)").Placeholder("0").Value(&e.Rate).Validate(validateRate),
	}
	if names {
		fields = append(fields,
			huh.NewInput().Title("Company Name").Value(&e.Company),
			huh.NewInput().Title("Employee Name").Value(&e.Employee),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huhTheme()).WithShowHelp(false)
}
