package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/vendaro/admin-console/internal/errors"
)

// Error is the normalized failure shape for every backend call. It always
// stringifies to a single human-readable message; the status code is kept
// for callers that special-case authorization failures.
type Error struct {
	Status  int // 0 for client-side transport failures
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode extracts the HTTP status from a normalized error. It returns 0
// for transport failures and for errors that did not come from the api
// package.
func StatusCode(err error) int {
	var apiErr *Error
	if apierrors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// backendError is the structured error body the backend may return.
type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// normalizeError maps a non-2xx response to an Error. Message precedence:
// the backend's structured message field, then a generic "Error Code"
// string. A 401 always overrides with the fixed session-expired message;
// session teardown has already happened in the transport chain by the time
// this runs.
func normalizeError(status int, body []byte) *Error {
	if status == http.StatusUnauthorized {
		return &Error{Status: status, Message: apierrors.ErrSessionExpired.Error()}
	}

	var be backendError
	if err := json.Unmarshal(body, &be); err == nil {
		if be.Message != "" {
			return &Error{Status: status, Message: be.Message}
		}
		if be.Error != "" {
			return &Error{Status: status, Message: be.Error}
		}
	}
	return &Error{Status: status, Message: fmt.Sprintf("Error Code: %d", status)}
}

// transportError wraps a failure that happened before any response was
// received (DNS, refused connection, context cancellation).
func transportError(err error) *Error {
	return &Error{Message: err.Error()}
}
