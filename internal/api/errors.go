package api

import "fmt"

// Error represents a failed API call. Message holds the server-provided
// {error} body when one was returned; otherwise the templated fallback
// "failed to <action>: status <code>" is used.
type Error struct {
	Action     string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("failed to %s: %v", e.Action, e.Cause)
	}
	return fmt.Sprintf("failed to %s: status %d", e.Action, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrValidation indicates a request payload failed client-side validation.
// It is returned before any network call is made.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}
