/*
errors.go - Centralized error types for the ledger engine

ERROR CATEGORIES:
  1. Validation errors - rejected before any mutation; the store is
     never left partially updated
  2. Not-found errors - operations addressed to an unknown id
  3. Month-closed errors - mutations against a closed calendar month
  4. Audit findings are NOT errors; they are informational results
     returned by audit.go

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, ledger.ErrNotFound) { ... }
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all caller-input rejections.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation addresses an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrMonthClosed is returned when a transaction mutation targets a
	// calendar month whose closing status is "fechado".
	ErrMonthClosed = errors.New("month is closed")

	// ErrNotProvision is returned when confirming a transaction that is
	// already real.
	ErrNotProvision = errors.New("transaction is not a provision")

	// ErrChecklistErrors is returned when closing a month whose
	// checklist still reports error-level items.
	ErrChecklistErrors = errors.New("checklist has unresolved errors")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError identifies the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError names the entity kind and id that failed to resolve.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// MonthClosedError names the locked month.
type MonthClosedError struct {
	YearMonth string
}

func (e *MonthClosedError) Error() string {
	return fmt.Sprintf("month %s is closed for editing", e.YearMonth)
}

func (e *MonthClosedError) Unwrap() error { return ErrMonthClosed }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing entity.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsClientError reports whether the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMonthClosed) ||
		errors.Is(err, ErrNotProvision) ||
		errors.Is(err, ErrChecklistErrors)
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "required"}
}
