// Package common defines shared constants and sentinel errors used across
// the layers of the messaging backend. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorForbidden     = errors.New("forbidden")
	ErrorAlreadyExists = errors.New("already exists")

	// Store connectivity failures. Retried by the collaborator layer with
	// backoff, never inside the core.
	ErrorUnavailable = errors.New("store unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ErrorValidation is the class sentinel for all input-validation failures.
// Concrete failures are ValidationError values wrapping this sentinel, so
// both errors.Is(err, ErrorValidation) and field extraction work.
var ErrorValidation = errors.New("validation error")

// ValidationError reports a rule-violating input together with the
// offending field name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrorValidation }

// NewValidationError builds a field-level validation failure.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
