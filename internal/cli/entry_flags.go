package cli

import (
	"worktracker/internal/worklog"

	"github.com/spf13/pflag"
)

// entryFlags are the record fields shared by add and edit. Only flags the
// user set are applied, so edit keeps the current value of the rest.
type entryFlags struct {
	date     string
	start    string
	end      string
	rate     string
	company  string
	employee string
}

func (f *entryFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.date, "date", "", "Date of the session (YYYY-MM-DD)")
	fs.StringVar(&f.start, "start", "", "Start time (HH:MM)")
	fs.StringVar(&f.end, "end", "", "End time (HH:MM)")
	fs.StringVar(&f.rate, "rate", "", "Hourly rate")
	fs.StringVar(&f.company, "company", "", "Company name")
	fs.StringVar(&f.employee, "employee", "", "Employee name")
}

func (f *entryFlags) apply(fs *pflag.FlagSet, form *worklog.EntryForm) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("date", &form.Date, f.date)
	set("start", &form.Start, f.start)
	set("end", &form.End, f.end)
	set("rate", &form.Rate, f.rate)
	set("company", &form.Company, f.company)
	set("employee", &form.Employee, f.employee)
}
