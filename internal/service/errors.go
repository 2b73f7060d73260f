package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a project, issue or node does not exist.
var ErrNotFound = errors.New("not found")

// AuthError means no credential is configured.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "auth error: " + e.Reason
}

// TransportError means the HTTP round trip could not complete.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError means the remote answered with a non-success status or a
// GraphQL error payload. Status is 0 for GraphQL-level errors.
type APIError struct {
	Status  int
	Message string
	Type    string // GraphQL error type, e.g. NOT_FOUND
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
	}
	return "api error: " + e.Message
}

// TypeConversionError means a value cannot be written to a field of type Want.
type TypeConversionError struct {
	Value Value
	Want  DataType
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s value %q to %s", e.Value.Kind, e.Value.String(), e.Want)
}

// IsBackendError reports whether err came from the board API or transport.
func IsBackendError(err error) bool {
	var apiErr *APIError
	var transportErr *TransportError
	return errors.As(err, &apiErr) || errors.As(err, &transportErr)
}

// IsNotFoundError reports whether err is a GraphQL NOT_FOUND error.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == "NOT_FOUND"
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
