package internal

import (
	"fmt"
	"strings"

	"worktracker/internal/cli/formatter"
	"worktracker/internal/errors"
	"worktracker/internal/worklog"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// defaultTableRows is how many log rows fit before the window size is known.
const defaultTableRows = 10

func (m *Model) View() string {
	switch m.screen {
	case screenPrint:
		return m.printView()
	case screenDetails:
		return m.formView("Details")
	case screenManual:
		return m.formView("Manual Entry")
	case screenEdit:
		return m.formView("Edit Work Log")
	}
	return m.mainView()
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Work Tracker"))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.detailsPanel(),
		"  ",
		m.timerPanel(),
	))
	sb.WriteString("\n")
	sb.WriteString(m.logPanel())
	sb.WriteString("\n")
	if line := m.statusLine(); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m *Model) detailsPanel() string {
	d := m.store.Defaults()
	body := fmt.Sprintf("%s\n\n%s %s\n%s %s",
		panelTitleStyle.Render("Details"),
		labelStyle.Render("Company: "), orDash(d.CompanyName),
		labelStyle.Render("Employee:"), orDash(d.EmployeeName),
	)
	return panelStyle.Render(body)
}

func (m *Model) timerPanel() string {
	d := m.store.Defaults()
	clock := worklog.FormatClock(int64(m.Elapsed.Seconds()))

	var display, state string
	if m.store.Running() {
		display = timerRunningStyle.Render(clock)
		state = timerRunningStyle.Render("● Running")
	} else {
		display = timerDisplayStyle.Render(clock)
		state = labelStyle.Render("○ Stopped")
	}

	body := fmt.Sprintf("%s\n\n%s %s/h\n%s  %s",
		panelTitleStyle.Render("Timer"),
		labelStyle.Render("Rate:"), worklog.FormatRate(d.HourlyRate),
		display, state,
	)
	return panelStyle.Render(body)
}

func (m *Model) logPanel() string {
	records := m.Records()
	if len(records) == 0 {
		return panelStyle.Render(panelTitleStyle.Render("Work Logs") + "\n\n" +
			labelStyle.Render("No work logs yet. Start the timer or press 'n' to add one."))
	}

	from, to := tableWindow(len(records), m.SelectedIndex, m.tableRows())
	rows := make([][]string, 0, to-from)
	for _, r := range records[from:to] {
		rows = append(rows, formatter.LogRow(r, m.opts.Location))
	}

	lines := strings.Split(strings.TrimRight(formatter.RenderTable(formatter.LogHeaders, rows), "\n"), "\n")
	for i := range lines {
		// lines[0] is the header and lines[1] the separator.
		if i >= 2 && from+i-2 == m.SelectedIndex {
			lines[i] = selectedStyle.Render("▸ ") + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}

	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render("Work Logs"))
	if from > 0 || to < len(records) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %d-%d of %d", from+1, to, len(records))))
	}
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(formatter.TotalLine(m.store.TotalPay()))
	return panelStyle.Render(sb.String())
}

func (m *Model) tableRows() int {
	if m.height == 0 {
		return defaultTableRows
	}
	// Title, panels, table chrome, status and help take roughly 20 lines.
	return max(m.height-20, 3)
}

// tableWindow returns the half-open range of rows to show so that the
// selected row stays visible.
func tableWindow(total, selected, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	from := selected - size/2
	from = max(from, 0)
	from = min(from, total-size)
	return from, from + size
}

func (m *Model) statusLine() string {
	if m.Err != nil {
		return errorStyle.Render(errors.UserMessage(m.Err))
	}
	if m.Notice != "" {
		return noticeStyle.Render(m.Notice)
	}
	return ""
}

func (m *Model) formView(title string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	if m.Err != nil {
		sb.WriteString(errorStyle.Render(errors.UserMessage(m.Err)))
		sb.WriteString("\n\n")
	}
	if m.form != nil {
		sb.WriteString(m.form.View())
	}
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("enter: next/submit  esc: cancel"))
	return sb.String()
}

func (m *Model) printView() string {
	var sb strings.Builder
	sb.WriteString(formatter.Header("Work Logs"))
	sb.WriteString("\n")
	sb.WriteString(formatter.RenderLogTable(m.Records(), m.store.TotalPay(), m.opts.Location))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("esc: back"))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return labelStyle.Render("-")
	}
	return s
}
