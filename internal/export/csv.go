// Package export renders work logs as a CSV document and writes export files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"worktracker/internal/worklog"
)

// MIMEType is the content type of an exported document.
const MIMEType = "text/csv;charset=utf-8;"

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

var header = []string{
	"Company",
	"Employee",
	"Date",
	"Start Time",
	"End Time",
	"Duration (seconds)",
	"Duration (HH:MM:SS)",
}

// Document renders records in the given order. Text columns are always
// quoted; lines are separated by "\n" with no trailing newline.
func Document(records []worklog.Record, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, r := range records {
		lines = append(lines, row(r, loc))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes the document for records to w.
func WriteCSV(w io.Writer, records []worklog.Record, loc *time.Location) error {
	_, err := io.WriteString(w, Document(records, loc))
	return err
}

// FileName is the export file name for an export taken at now, dated in UTC.
func FileName(now time.Time) string {
	return fmt.Sprintf("work_logs_%s.csv", now.UTC().Format(dateLayout))
}

// WriteFile writes the document into dir and returns the file path.
func WriteFile(dir string, now time.Time, records []worklog.Record, loc *time.Location) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, []byte(Document(records, loc)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func row(r worklog.Record, loc *time.Location) string {
	start := r.StartTime.In(loc)
	seconds := r.DurationSeconds()
	return strings.Join([]string{
		quote(r.CompanyName),
		quote(r.EmployeeName),
		quote(start.Format(dateLayout)),
		quote(start.Format(clockLayout)),
		quote(r.EndTime.In(loc).Format(clockLayout)),
		strconv.FormatInt(seconds, 10),
		quote(worklog.FormatClock(seconds)),
	}, ",")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
