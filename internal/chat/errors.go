package chat

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the lifecycle controller and its stores.
// Handlers translate these into HTTP responses; nothing in the core panics.
var (
	// ErrNotFound is returned when a request, notification or attachment id
	// does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrRequestClosed is returned for writes against a Closed thread.
	ErrRequestClosed = errors.New("request is closed")

	// ErrInvalidTransition is returned when a status change is not permitted
	// from the request's current state, including the loser of a concurrent
	// accept/close race.
	ErrInvalidTransition = errors.New("status transition not permitted")
)

// ValidationError reports malformed or missing required input, such as an
// unknown participant email or an empty medicine list.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
