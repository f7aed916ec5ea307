package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnavailable indicates the backend cannot be reached.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrInvalid indicates the backend's response could not be parsed
	// into the expected shape.
	ErrInvalid = errors.New("invalid provider response")

	// ErrTimeout indicates the call exceeded its bounded wait.
	ErrTimeout = errors.New("provider call timed out")
)

// Error wraps provider errors with context.
type Error struct {
	Provider  string // Provider name ("claude", "ollama", ...)
	Op        string // Operation that failed ("convert", "availability")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error, retryable bool) *Error {
	return &Error{
		Provider:  provider,
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable checks if an error is likely transient and worth retrying
// on a subsequent conversion.
func IsRetryable(err error) bool {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout)
}
