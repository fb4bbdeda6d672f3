package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrDisabled signals that a record exists but is administratively turned
// off. Kept distinct from ErrNotFound so callers can report the two
// conditions differently.
var ErrDisabled = errors.New("disabled")

// ValidationError reports malformed input. It is returned before any store
// access happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateInScopeError reports a unique-constraint violation within a
// scope. Value is the conflicting trigger text or command name and Scope is
// a human-readable scope description ("globally" or "in this server").
type DuplicateInScopeError struct {
	Value string
	Scope string
}

func (e *DuplicateInScopeError) Error() string {
	return fmt.Sprintf("%q already exists %s", e.Value, e.Scope)
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDisabledError checks if an error is a "disabled" error
func IsDisabledError(err error) bool {
	return errors.Is(err, ErrDisabled)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicateInScopeError checks if an error is a duplicate-in-scope error
func IsDuplicateInScopeError(err error) bool {
	var de *DuplicateInScopeError
	return errors.As(err, &de)
}
