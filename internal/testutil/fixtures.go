package testutil

import (
	"time"

	"worktracker/internal/worklog"

	"github.com/google/uuid"
)

// T0 is a fixed instant on a whole millisecond used across tests.
var T0 = time.UnixMilli(1_700_000_000_000)

// Record options
type RecordOption func(*worklog.Fields, *string)

func WithID(id string) RecordOption {
	return func(_ *worklog.Fields, recID *string) {
		*recID = id
	}
}

func WithStart(t time.Time) RecordOption {
	return func(f *worklog.Fields, _ *string) {
		span := f.EndTime.Sub(f.StartTime)
		f.StartTime = t
		f.EndTime = t.Add(span)
	}
}

func WithSpan(d time.Duration) RecordOption {
	return func(f *worklog.Fields, _ *string) {
		f.EndTime = f.StartTime.Add(d)
	}
}

func WithRate(rate float64) RecordOption {
	return func(f *worklog.Fields, _ *string) {
		f.HourlyRate = rate
	}
}

func WithCompany(name string) RecordOption {
	return func(f *worklog.Fields, _ *string) {
		f.CompanyName = name
	}
}

func WithEmployee(name string) RecordOption {
	return func(f *worklog.Fields, _ *string) {
		f.EmployeeName = name
	}
}

// NewTestRecord builds a valid one-hour record at T0 with a fresh ID.
// It panics on invalid options since fixtures are meant to be valid.
func NewTestRecord(opts ...RecordOption) worklog.Record {
	id := uuid.New().String()
	f := worklog.Fields{
		StartTime:    T0,
		EndTime:      T0.Add(time.Hour),
		CompanyName:  "Acme",
		EmployeeName: "Jane",
		HourlyRate:   20,
	}
	for _, opt := range opts {
		opt(&f, &id)
	}
	r, err := worklog.NewRecord(id, f)
	if err != nil {
		panic(err)
	}
	return r
}
