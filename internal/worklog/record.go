package worklog

import (
	"encoding/json"
	"math"
	"time"

	"worktracker/internal/errors"
)

// Record represents one completed work session.
//
// Duration is derived from StartTime and EndTime and cannot be set on its own;
// construct records with NewRecord or Replace.
type Record struct {
	ID           string
	StartTime    time.Time
	EndTime      time.Time
	CompanyName  string
	EmployeeName string
	HourlyRate   float64

	seconds int64
}

// Fields is the replaceable content of a record, everything but its ID.
type Fields struct {
	StartTime    time.Time
	EndTime      time.Time
	CompanyName  string
	EmployeeName string
	HourlyRate   float64
}

// Validate checks the constraints enforced at creation and edit time.
func (f Fields) Validate() error {
	if !f.EndTime.After(f.StartTime) {
		return errors.EndBeforeStart()
	}
	if math.IsNaN(f.HourlyRate) || math.IsInf(f.HourlyRate, 0) {
		return errors.Validation("hourly rate must be a number")
	}
	if f.HourlyRate < 0 {
		return errors.Validation("hourly rate must not be negative")
	}
	return nil
}

// NewRecord validates f and builds a record with the given ID. Times are
// truncated to millisecond precision, the resolution they are stored at.
func NewRecord(id string, f Fields) (Record, error) {
	f.StartTime = truncMillis(f.StartTime)
	f.EndTime = truncMillis(f.EndTime)
	if err := f.Validate(); err != nil {
		return Record{}, err
	}
	return build(id, f), nil
}

// Replace returns a copy of r with its content swapped for f. The ID is kept
// and the duration re-derived.
func (r Record) Replace(f Fields) (Record, error) {
	return NewRecord(r.ID, f)
}

// Fields returns the replaceable content of r.
func (r Record) Fields() Fields {
	return Fields{
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		CompanyName:  r.CompanyName,
		EmployeeName: r.EmployeeName,
		HourlyRate:   r.HourlyRate,
	}
}

// DurationSeconds is floor((end - start) / 1s) at millisecond resolution.
func (r Record) DurationSeconds() int64 {
	return r.seconds
}

func build(id string, f Fields) Record {
	return Record{
		ID:           id,
		StartTime:    f.StartTime,
		EndTime:      f.EndTime,
		CompanyName:  f.CompanyName,
		EmployeeName: f.EmployeeName,
		HourlyRate:   f.HourlyRate,
		seconds:      deriveSeconds(f.StartTime, f.EndTime),
	}
}

func deriveSeconds(start, end time.Time) int64 {
	ms := end.UnixMilli() - start.UnixMilli()
	s := ms / 1000
	if ms%1000 != 0 && ms < 0 {
		s--
	}
	return s
}

func truncMillis(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli())
}

// recordJSON is the stored shape: epoch milliseconds and camelCase keys, the
// same layout the browser tracker kept in localStorage plus an id.
type recordJSON struct {
	ID           string  `json:"id,omitempty"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	Duration     int64   `json:"duration"`
	CompanyName  string  `json:"companyName"`
	EmployeeName string  `json:"employeeName"`
	HourlyRate   float64 `json:"hourlyRate"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:           r.ID,
		StartTime:    r.StartTime.UnixMilli(),
		EndTime:      r.EndTime.UnixMilli(),
		Duration:     r.seconds,
		CompanyName:  r.CompanyName,
		EmployeeName: r.EmployeeName,
		HourlyRate:   r.HourlyRate,
	})
}

// UnmarshalJSON loads a stored record. The stored duration is ignored and
// re-derived; stored records are not re-validated.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = build(raw.ID, Fields{
		StartTime:    time.UnixMilli(raw.StartTime),
		EndTime:      time.UnixMilli(raw.EndTime),
		CompanyName:  raw.CompanyName,
		EmployeeName: raw.EmployeeName,
		HourlyRate:   raw.HourlyRate,
	})
	return nil
}
