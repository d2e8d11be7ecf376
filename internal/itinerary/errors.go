package itinerary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing itinerary and an ownership mismatch;
	// the two are deliberately indistinguishable so that non-owners cannot
	// probe for existence.
	ErrNotFound = errors.New("itinerary not found")

	// ErrDayNotFound means the itinerary exists but has no day with the
	// requested number.
	ErrDayNotFound = errors.New("day not found")

	// ErrActivityNotFound means the day exists but holds no activity with
	// the requested id.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrStoreUnavailable wraps persistence failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed or missing input. The operation is not
// attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
