// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// Infrastructure errors
	ErrStore         = errors.New("record store error")
	ErrConfiguration = errors.New("configuration error")

	// External service errors
	ErrProvider      = errors.New("provider error")
	ErrDNSResolution = errors.New("DNS resolution failed")
	ErrTimeout       = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "statistics", "assistant"
	Op      string // Operation that failed, e.g., "Create", "List"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Student domain errors
var (
	ErrStudentNotFound = NewDomainError("student", "Find", ErrNotFound, "student not found")
	ErrInvalidStatus   = NewDomainError("student", "Validate", ErrValueOutOfRange, "status must be Active or Inactive")
	ErrInvalidScore    = NewDomainError("student", "Validate", ErrValueOutOfRange, "score must be between 0 and 100")
)

// Assistant errors
var (
	ErrMissingMessage      = NewDomainError("assistant", "Validate", ErrValidation, "message is required")
	ErrMissingCredential   = NewDomainError("assistant", "Configure", ErrConfiguration, "assistant API key is not configured")
	ErrProviderUnreachable = NewDomainError("assistant", "Complete", ErrProvider, "completion provider is unreachable")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsStore checks if the error originated in the record store.
func IsStore(err error) bool {
	return errors.Is(err, ErrStore)
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsProvider checks if the error came from the completion provider.
func IsProvider(err error) bool {
	return errors.Is(err, ErrProvider) ||
		errors.Is(err, ErrDNSResolution) ||
		errors.Is(err, ErrTimeout)
}
