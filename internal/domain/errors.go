package domain

import (
	"errors"
	"fmt"
)

// Error types for consistent error handling across the client layer.

// ErrNoSession is returned before any network call when an operation
// requiring auth is invoked with no stored token.
var ErrNoSession = errors.New("authentication required: no active session")

// APIError indicates the server rejected a request with a non-2xx status
// (or a 2xx whose envelope says success=false). Message is already
// extracted from the error envelope and suitable for direct display.
type APIError struct {
	Status    int
	Operation string
	Message   string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ErrMalformedPayload indicates a backend response that could not be
// mapped to the canonical client-side shape.
type ErrMalformedPayload struct {
	Resource string
	Reason   string
}

func (e *ErrMalformedPayload) Error() string {
	return fmt.Sprintf("malformed %s payload: %s", e.Resource, e.Reason)
}

// ErrValidation indicates a client-side validation failure (bad input),
// raised before the request is sent.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrTransport wraps a failure in issuing the request or reading its
// body, as opposed to a server-side rejection.
type ErrTransport struct {
	Operation string
	Err       error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("request failed [%s]: %v", e.Operation, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}
