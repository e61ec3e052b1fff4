package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMetricNotFound metric row does not exist
	ErrMetricNotFound = errors.New("metric not found")

	// ErrInvalidInput raw counters failed validation
	ErrInvalidInput = errors.New("invalid input data")
)

// ValidationError rejects malformed raw metric input before computation.
// Callers treat it as a contract violation, not a user-facing failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
