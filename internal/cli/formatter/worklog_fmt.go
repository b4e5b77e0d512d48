package formatter

import (
	"fmt"
	"strings"
	"time"

	"worktracker/internal/worklog"

	"github.com/shopspring/decimal"
)

// ShortIDLen is how much of a record ID listings show.
const ShortIDLen = 8

// ShortID truncates an ID for display. Any unique prefix is accepted back
// by the edit and rm commands.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// LogHeaders are the columns of the work log table.
var LogHeaders = []string{"ID", "Date", "Start", "End", "Duration", "Company", "Employee", "Rate", "Pay"}

// LogRow renders one record as table cells in loc.
func LogRow(r worklog.Record, loc *time.Location) []string {
	start := r.StartTime.In(loc)
	return []string{
		Dim(ShortID(r.ID)),
		start.Format(worklog.DateLayout),
		start.Format(worklog.TimeLayout),
		r.EndTime.In(loc).Format(worklog.TimeLayout),
		worklog.FormatShort(r.DurationSeconds()),
		r.CompanyName,
		r.EmployeeName,
		worklog.FormatRate(r.HourlyRate),
		worklog.FormatMoney(r.Pay()),
	}
}

// RenderLogTable renders records in the given order with a total pay footer.
func RenderLogTable(records []worklog.Record, total decimal.Decimal, loc *time.Location) string {
	if len(records) == 0 {
		return Dim("No work logs yet.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, LogRow(r, loc))
	}

	var b strings.Builder
	b.WriteString(RenderTable(LogHeaders, rows))
	b.WriteString("\n")
	b.WriteString(TotalLine(total))
	b.WriteString("\n")
	return b.String()
}

// TotalLine is the footer shown under the log table.
func TotalLine(total decimal.Decimal) string {
	return fmt.Sprintf("%s %s", Bold("Total Pay:"), StyleGreen.Render(worklog.FormatMoney(total)))
}

// RecordSummary is the one-line confirmation printed after add and edit.
func RecordSummary(r worklog.Record, loc *time.Location) string {
	start := r.StartTime.In(loc)
	return fmt.Sprintf("%s %s %s-%s (%s) %s",
		ShortID(r.ID),
		start.Format(worklog.DateLayout),
		start.Format(worklog.TimeLayout),
		r.EndTime.In(loc).Format(worklog.TimeLayout),
		worklog.FormatShort(r.DurationSeconds()),
		worklog.FormatMoney(r.Pay()),
	)
}
