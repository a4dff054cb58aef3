package freesound

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/me/freesound/pkg/response"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		err  *APIError
		want string
	}{
		{&APIError{StatusCode: 404, Detail: "Not found."}, "HTTP 404: Not found."},
		{&APIError{StatusCode: 500}, "HTTP 500"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &APIError{StatusCode: http.StatusInternalServerError}, true},
		{"throttled", &APIError{StatusCode: http.StatusTooManyRequests}, true},
		{"not found", &APIError{StatusCode: http.StatusNotFound}, false},
		{"wrapped server error", WrapError("op", &APIError{StatusCode: http.StatusBadGateway}), true},
		{"transport", &transportError{err: errors.New("connection reset")}, true},
		{"canceled", WrapError("op", context.Canceled), false},
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized", &APIError{StatusCode: http.StatusUnauthorized}, true},
		{"forbidden", WrapError("op", &APIError{StatusCode: http.StatusForbidden}), true},
		{"no token", WrapError("op", ErrNotAuthenticated), true},
		{"no refresh token", ErrNoRefreshToken, true},
		{"not found", &APIError{StatusCode: http.StatusNotFound}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckResponse(t *testing.T) {
	if err := CheckResponse[string](nil); err != nil {
		t.Errorf("CheckResponse(nil) = %v", err)
	}

	ok := response.New[string](http.StatusOK, "OK")
	if err := CheckResponse(ok); err != nil {
		t.Errorf("CheckResponse(200) = %v", err)
	}

	failed := response.New[string](http.StatusNotFound, "Not Found")
	failed.SetErrorDetails("Not found.")
	err := CheckResponse(failed)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("CheckResponse(404) = %v, want *APIError", err)
	}
	want := APIError{StatusCode: http.StatusNotFound, Status: "Not Found", Detail: "Not found."}
	if *apiErr != want {
		t.Errorf("CheckResponse(404) = %+v, want %+v", *apiErr, want)
	}
	if !IsNotFoundError(err) {
		t.Error("IsNotFoundError() = false, want true")
	}
}

func TestError(t *testing.T) {
	err := NewError("GET /me/", "no token")
	if err.Error() != "GET /me/: no token" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := WrapError("GET /me/", ErrNotAuthenticated)
	if !errors.Is(wrapped, ErrNotAuthenticated) {
		t.Error("WrapError() does not unwrap to the cause")
	}
	if wrapped.Error() != "GET /me/: "+ErrNotAuthenticated.Error() {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}
