// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and mapped to transport codes by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated indicates missing or invalid credentials or session.
	// The message is deliberately generic: callers must not be able to tell
	// an unknown user from a wrong password.
	ErrUnauthenticated = errors.New("invalid username or password")

	// ErrCSRF indicates a missing or mismatched CSRF token on a mutating
	// request. Treated as an authentication failure at the boundary.
	ErrCSRF = errors.New("invalid request token")

	// ErrForbidden indicates a valid session with insufficient rights.
	ErrForbidden = errors.New("forbidden")

	// ErrConfiguration indicates a fatal environment precondition, such as a
	// missing credential table. Surfaced as a blocking message, not a panic.
	ErrConfiguration = errors.New("configuration error")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError names the missing or broken precondition.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// NewConfigurationError creates a configuration error with context.
func NewConfigurationError(reason string) error {
	return &ConfigurationError{Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthenticated checks if an error is an authentication failure.
// CSRF failures count: they are presented identically to bad credentials.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrCSRF)
}

// IsCSRF checks if an error is specifically a CSRF token failure.
func IsCSRF(err error) bool {
	return errors.Is(err, ErrCSRF)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsConfiguration checks if an error is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
