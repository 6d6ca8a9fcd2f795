// Package quizerr defines the error taxonomy shared by the quiz core.
// Callers match with errors.Is; the API layer maps each sentinel to an
// HTTP status in one place.
package quizerr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPhase    = errors.New("invalid phase")
	ErrNotFound        = errors.New("not found")
	ErrEmptySubmission = errors.New("no answers submitted")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrConflict        = errors.New("conflicting write")
	ErrStorage         = errors.New("storage failure")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Storage wraps a driver error so it matches ErrStorage while keeping
// the original message.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
}
