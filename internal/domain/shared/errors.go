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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Status transition is not allowed")
)

// TransitionError is returned when a state machine rejects a move between two states.
// It unwraps to a DomainError with code INVALID_TRANSITION so callers that only
// understand DomainError still map it correctly.
type TransitionError struct {
	Aggregate string
	From      string
	To        string
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Aggregate, e.From, e.To)
}

// Unwrap exposes the DomainError view of the transition failure
func (e *TransitionError) Unwrap() error {
	return NewDomainError(ErrInvalidTransition.Code, e.Error())
}

// Is reports whether target is the shared INVALID_TRANSITION sentinel
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
