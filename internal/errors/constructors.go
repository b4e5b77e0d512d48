package errors

import "fmt"

// Validation creates an input validation error
func Validation(message string) *TrackerError {
	return New(ErrCodeValidation, message)
}

// EndBeforeStart is returned when a record's end does not come after its start
func EndBeforeStart() *TrackerError {
	return Validation("end time must be after start time")
}

// FieldsRequired is returned when a form is submitted with blank required fields
func FieldsRequired(fields ...string) *TrackerError {
	return Validation("all fields are required").WithDetail("missing", fields)
}

// RecordNotFound creates a not-found error for a record ID
func RecordNotFound(id string) *TrackerError {
	return New(ErrCodeNotFound, fmt.Sprintf("work log %s not found", id)).
		WithDetail("id", id)
}

// TimerAlreadyRunning is returned when starting a timer that is running
func TimerAlreadyRunning() *TrackerError {
	return New(ErrCodeTimerRunning, "timer is already running")
}

// TimerNotRunning is returned when stopping a timer that is not running
func TimerNotRunning() *TrackerError {
	return New(ErrCodeTimerStopped, "timer is not running")
}

// PersistenceFailed wraps a storage failure
func PersistenceFailed(op string, err error) *TrackerError {
	return Wrap(err, ErrCodePersistence, fmt.Sprintf("failed to %s work logs", op)).
		WithDetail("op", op)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *TrackerError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RateLocked is returned when the hourly rate changes while the timer runs
func RateLocked() *TrackerError {
	return New(ErrCodeTimerRunning, "hourly rate cannot change while the timer is running")
}
