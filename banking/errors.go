package banking

import (
	"errors"
	"fmt"
)

// Error kind names as reported by ErrorKind and embedded in collector
// error markers.
const (
	KindTransport      = "transport"
	KindAuthentication = "authentication"
	KindAPI            = "api"
	KindDecoding       = "decoding"
)

// TransportError indicates the request never produced an HTTP response
// (connection refused, DNS failure, timeout).
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy kind name
func (e *TransportError) Kind() string { return KindTransport }

// AuthenticationError indicates a missing token, rejected credentials,
// or a 401/403 response. StatusCode is 0 when no request was made
// (token never set).
type AuthenticationError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("authentication failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Kind returns the taxonomy kind name
func (e *AuthenticationError) Kind() string { return KindAuthentication }

// APIError indicates a non-2xx response other than 401/403. The response
// body is preserved verbatim for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("banking API error: status %d: %s", e.StatusCode, e.Body)
}

// Kind returns the taxonomy kind name
func (e *APIError) Kind() string { return KindAPI }

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// DecodingError indicates a 2xx response whose body is not valid JSON or
// does not match the expected shape.
type DecodingError struct {
	Err error
}

// Error implements the error interface
func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

// Unwrap returns the underlying cause
func (e *DecodingError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy kind name
func (e *DecodingError) Kind() string { return KindDecoding }

// ErrorKind maps an error to its taxonomy kind name. It returns an empty
// string for nil and for errors outside the taxonomy.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransport
	}

	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return KindAuthentication
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}

	var decErr *DecodingError
	if errors.As(err, &decErr) {
		return KindDecoding
	}

	return ""
}

// errNotAuthenticated builds the AuthenticationError returned by accessors
// called before Authenticate has succeeded. No transport request is made.
func errNotAuthenticated() *AuthenticationError {
	return &AuthenticationError{Message: "not authenticated, call Authenticate first"}
}
