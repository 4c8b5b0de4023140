// Package apperr defines the domain error taxonomy shared by services and
// repositories. Controllers translate these into HTTP responses at the
// boundary; anything that is none of these types is treated as an internal
// fault (logged, 500).
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input, caught before any
// write. Fields maps field name to a user-facing message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d fields)", len(e.Fields))
}

// Validation builds a ValidationError from a field error map.
func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ValidationField builds a single-field ValidationError.
func ValidationField(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// BusinessRuleError reports a domain rule rejection: an illegal status
// transition, deleting a category that still has products, an admin editing
// their own account. Recovered into a user-facing message, never a crash.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// BusinessRule builds a BusinessRuleError with a formatted message.
func BusinessRule(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a lost concurrency race. The whole unit of work has
// been rolled back; the caller should be told to retry, not retried for.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict builds a ConflictError.
func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity by identifier.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// AsValidation extracts a ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

// IsBusinessRule reports whether err's chain contains a BusinessRuleError.
func IsBusinessRule(err error) bool {
	var b *BusinessRuleError
	return errors.As(err, &b)
}

// IsConflict reports whether err's chain contains a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsNotFound reports whether err's chain contains a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
