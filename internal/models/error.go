package models

import (
	"fmt"
	"strings"
)

// Error messages returned to API clients
const (
	MsgMissingRequiredFields = "Missing required fields"
	MsgValidationErrors      = "validation errors"
	MsgInternalServer        = "Internal server error"
)

// ValidationError reports client input that is malformed or incomplete.
// It is raised before the store is touched.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return MsgValidationErrors
	}
	return strings.Join(e.Errors, "; ")
}

// NewValidationError creates a ValidationError with the given messages
func NewValidationError(messages ...string) ValidationError {
	return ValidationError{Errors: messages}
}

// ConstraintError reports a referential or uniqueness violation found while writing.
// The write it belongs to has been rolled back.
type ConstraintError struct {
	Err error
}

func (e ConstraintError) Error() string {
	if e.Err == nil {
		return "constraint violation"
	}
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e ConstraintError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ErrorResponse is the body of a single-error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorsResponse is the body of a response reporting one or more input errors
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}
