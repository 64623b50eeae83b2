// Package storeerrors defines the failure kinds the store reports to its
// callers. Raw driver errors never cross the store boundary; every failure
// path is translated to one of these kinds plus a readable message.
package storeerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches the value queried.
	ErrNotFound = errors.New("no record matches the value queried")

	// ErrUnavailable is returned when the storage backend cannot serve
	// the operation. The operation is reported once, never retried.
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a field that failed entity validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a uniqueness violation on a field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// IsNotFound reports whether err is the not-found kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err is the storage-unavailable kind.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err carries a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
