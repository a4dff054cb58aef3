package freesound

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/me/freesound/pkg/response"
)

// Error types for common failure scenarios.
var (
	// ErrNotAuthenticated indicates a query needing an OAuth2 token was given none.
	ErrNotAuthenticated = errors.New("not authenticated: no OAuth2 access token")

	// ErrNoAPIKey indicates no API key was found in the environment or on disk.
	ErrNoAPIKey = errors.New("no API key found")

	// ErrInvalidConfig indicates the client configuration failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoNextPage indicates the last response advertised no following page.
	ErrNoNextPage = errors.New("no next page")

	// ErrNoPreviousPage indicates the last response advertised no preceding page.
	ErrNoPreviousPage = errors.New("no previous page")

	// ErrNoRefreshToken indicates an expired token cannot be refreshed.
	ErrNoRefreshToken = errors.New("token expired and has no refresh token")

	// ErrTokenNotFound indicates no token is stored under the requested key.
	ErrTokenNotFound = errors.New("no stored token")
)

// APIError is an error response reported by the API, for callers that want
// it as a Go error. Execute itself never returns one; see CheckResponse.
type APIError struct {
	StatusCode int
	Status     string
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsRetryable returns true if the request may succeed when repeated.
func (e *APIError) IsRetryable() bool {
	return retryableStatus(e.StatusCode)
}

// retryableStatus covers server-side failures and throttling.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}

// CheckResponse returns an *APIError for an error envelope and nil otherwise.
func CheckResponse[T any](resp *response.Response[T]) error {
	if resp == nil || !resp.IsError() {
		return nil
	}
	return &APIError{StatusCode: resp.Status(), Status: resp.StatusText(), Detail: resp.ErrorDetails()}
}

// Error wraps a client failure with the operation that caused it.
type Error struct {
	// Op is the operation that failed, e.g. "GET /sounds/{sound_id}/".
	Op string

	// Message is the error message.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given operation and message.
func NewError(op, message string) *Error {
	return &Error{Op: op, Message: message}
}

// WrapError wraps an error with operation context.
func WrapError(op string, err error) *Error {
	return &Error{Op: op, Err: err, Message: err.Error()}
}

// IsAuthError returns true if the error means the credentials were missing or
// rejected.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrNoRefreshToken)
}

// IsNotFoundError returns true if the error indicates a resource was not found.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRetryable returns true if the error is likely transient and the request
// should be retried.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var transportErr *transportError
	return errors.As(err, &transportErr)
}

// transportError marks failures of the HTTP round trip itself.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "HTTP request failed: " + e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }
