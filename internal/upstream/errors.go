package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the backend. Message is taken from the
// backend's JSON error body when present, otherwise a generic text.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// errorBody is the error shape the backend uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is an upstream 403.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.StatusCode == code
}
