package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Input errors
	ErrCodeValidation ErrorCode = "VALIDATION"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// Timer state errors
	ErrCodeTimerRunning ErrorCode = "TIMER_RUNNING"
	ErrCodeTimerStopped ErrorCode = "TIMER_STOPPED"

	// Storage errors
	ErrCodePersistence ErrorCode = "PERSISTENCE"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// TrackerError represents a structured error with context
type TrackerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TrackerError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *TrackerError) WithDetail(key string, value interface{}) *TrackerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new TrackerError
func New(code ErrorCode, message string) *TrackerError {
	return &TrackerError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a TrackerError
func Wrap(err error, code ErrorCode, message string) *TrackerError {
	return &TrackerError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific TrackerError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	var te *TrackerError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}

// UserMessage returns the message suitable for showing inline to the user.
// Coded errors yield their bare message; anything else falls back to Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var te *TrackerError
	if stderrors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}
