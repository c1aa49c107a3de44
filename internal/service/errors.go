package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/oetprep/internal/session"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNoActiveAttempt indicates a submission without a started test.
	// API layer should map this to HTTP 400 Bad Request.
	ErrNoActiveAttempt = session.ErrNoActiveAttempt

	// ErrAuthenticationRequired indicates a practice attempt submitted without
	// a signed-in user. The attempt is preserved for a retry after login.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrInvalidCredentials indicates an unknown email or wrong password.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ServiceError wraps errors from the services with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_test", "record_result")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
