package core

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable signals that the durable store could not be opened,
// read, or written. Callers surface it as a generic failure; there is no
// automatic retry inside the core.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ValidationError reports a missing or empty required field. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// ServiceError wraps a failure of the generative-model collaborator. The
// underlying error is surfaced verbatim; no fallback response is synthesized.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("model service %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
