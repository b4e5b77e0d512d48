package worklog

import "time"

// Defaults holds the details-panel values applied to newly created records.
type Defaults struct {
	CompanyName  string
	EmployeeName string
	HourlyRate   float64
}

// TimerFields builds the content of a record produced by stopping the timer.
func (d Defaults) TimerFields(start, end time.Time) Fields {
	return d.ManualFields(start, end, d.HourlyRate)
}

// ManualFields builds the content of a manually entered record. The rate
// comes from the entry form; names come from the defaults.
func (d Defaults) ManualFields(start, end time.Time, rate float64) Fields {
	return Fields{
		StartTime:    start,
		EndTime:      end,
		CompanyName:  d.CompanyName,
		EmployeeName: d.EmployeeName,
		HourlyRate:   rate,
	}
}
