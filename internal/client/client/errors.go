package client

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a 2xx response whose body could not be decoded
// into the shape the endpoint promises.
var ErrInvalidResponse = errors.New("invalid server response")

// FieldErrors maps a submitted field name to the validation messages the
// server produced for it. Message order inside a field is the server's order
// and is meant to be the display order.
type FieldErrors map[string][]string

// ValidationError is returned for 422 responses and for 401 on login, where
// bad credentials are reported as a field-level problem.
type ValidationError struct {
	Message string
	Fields  FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnauthorizedError is returned when the server rejects the bearer token on
// an operation that requires an existing authenticated session.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

// ServerError covers every remaining non-2xx status. Code keeps the HTTP
// status for diagnostics.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Code)
}

// NetworkError is a transport-level failure: no HTTP response was received
// at all. It wraps the underlying transport error.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
