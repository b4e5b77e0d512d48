package worklog

import (
	"math"
	"strconv"
	"strings"
	"time"

	"worktracker/internal/errors"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultStart = "09:00"
	DefaultEnd   = "17:00"
)

// EntryForm holds the raw text of the manual-entry form and the edit dialog.
// Start and end are times of day on Date, read in the form's location.
type EntryForm struct {
	Date     string
	Start    string
	End      string
	Rate     string
	Company  string
	Employee string
}

// NewEntryForm returns the manual-entry form reset to its defaults: today,
// 09:00 to 17:00, rate 0.
func NewEntryForm(now time.Time) EntryForm {
	return EntryForm{
		Date:  now.Format(DateLayout),
		Start: DefaultStart,
		End:   DefaultEnd,
		Rate:  "0",
	}
}

// EntryFromRecord pre-fills the edit dialog from r, rendered in loc.
func EntryFromRecord(r Record, loc *time.Location) EntryForm {
	start := r.StartTime.In(loc)
	return EntryForm{
		Date:     start.Format(DateLayout),
		Start:    start.Format(TimeLayout),
		End:      r.EndTime.In(loc).Format(TimeLayout),
		Rate:     strconv.FormatFloat(r.HourlyRate, 'f', -1, 64),
		Company:  r.CompanyName,
		Employee: r.EmployeeName,
	}
}

// ParseManual reads a manual entry. Company and employee are not part of
// the manual form; they come from the session defaults.
func (f EntryForm) ParseManual(loc *time.Location) (start, end time.Time, rate float64, err error) {
	if missing := f.missing(false); len(missing) > 0 {
		return time.Time{}, time.Time{}, 0, errors.FieldsRequired(missing...)
	}
	return f.parseSpan(loc)
}

// ParseEdit reads the edit dialog into replacement fields. Unlike the manual
// form, company and employee are required here.
func (f EntryForm) ParseEdit(loc *time.Location) (Fields, error) {
	if missing := f.missing(true); len(missing) > 0 {
		return Fields{}, errors.FieldsRequired(missing...)
	}
	start, end, rate, err := f.parseSpan(loc)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		StartTime:    start,
		EndTime:      end,
		CompanyName:  strings.TrimSpace(f.Company),
		EmployeeName: strings.TrimSpace(f.Employee),
		HourlyRate:   rate,
	}, nil
}

func (f EntryForm) missing(names bool) []string {
	var out []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	if names {
		check("company", f.Company)
		check("employee", f.Employee)
	}
	check("date", f.Date)
	check("start", f.Start)
	check("end", f.End)
	return out
}

func (f EntryForm) parseSpan(loc *time.Location) (time.Time, time.Time, float64, error) {
	if loc == nil {
		loc = time.Local
	}
	date := strings.TrimSpace(f.Date)
	start, err := parseClock(date, f.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	end, err := parseClock(date, f.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, 0, errors.EndBeforeStart()
	}
	rate, err := ParseRate(f.Rate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	return start, end, rate, nil
}

func parseClock(date, clock string, loc *time.Location) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.ParseInLocation(DateLayout+" "+layout, date+" "+clock, loc); err == nil {
			return t, nil
		}
	}
	if _, err := time.ParseInLocation(DateLayout, date, loc); err != nil {
		return time.Time{}, errors.Validation("date must be YYYY-MM-DD").WithDetail("value", date)
	}
	return time.Time{}, errors.Validation("time must be HH:MM").WithDetail("value", clock)
}

// ParseRate reads an hourly rate. Blank means 0.
func ParseRate(s string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return 0, nil
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, errors.Validation("hourly rate must be a number").WithDetail("value", s)
	}
	if rate < 0 {
		return 0, errors.Validation("hourly rate must not be negative")
	}
	return rate, nil
}
