package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped or re-created errors
// compare equal to the sentinels below
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with a caller-facing message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates a not-found error for the given resource
func NewNotFoundError(resource, id string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %q not found", resource, id))
}

// Error codes shared by all bounded contexts
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
)

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidation   = NewDomainError(CodeValidation, "Validation failed")
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)

// StoreError wraps a persistence failure (I/O, connectivity, constraint).
// Its message never carries the underlying driver detail; use errors.Unwrap
// or the Err field for logging.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a StoreError for the given operation
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return "store operation failed: " + e.Op
}

// Unwrap returns the underlying persistence error
func (e *StoreError) Unwrap() error {
	return e.Err
}
