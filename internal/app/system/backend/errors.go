package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnavailable marks failures where the backend could not be reached
// or its response could not be read.
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// messageFrom extracts a human message from an error body. Backends in
// the wild use "message", "error" or "msg"; "error" may itself be an
// object with a message.
func messageFrom(raw []byte, status int) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"message", "error", "msg"} {
			v, ok := body[key]
			if !ok {
				continue
			}
			var s string
			if json.Unmarshal(v, &s) == nil && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(v, &nested) == nil && strings.TrimSpace(nested.Message) != "" {
				return strings.TrimSpace(nested.Message)
			}
		}
	}
	return http.StatusText(status)
}

// StatusOf returns the HTTP status of an *APIError in err's chain, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsUnauthorized reports a 401 from the backend: the token was rejected.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// IsForbidden reports a 403 from the backend.
func IsForbidden(err error) bool { return StatusOf(err) == http.StatusForbidden }

// IsConflict reports a 409 from the backend (duplicate plate, email...).
func IsConflict(err error) bool { return StatusOf(err) == http.StatusConflict }

// IsValidation reports a 400 or 422 from the backend.
func IsValidation(err error) bool {
	s := StatusOf(err)
	return s == http.StatusBadRequest || s == http.StatusUnprocessableEntity
}

// UserMessage returns a message suitable for a toast. Validation,
// conflict, not-found and forbidden responses carry the backend's own
// wording; anything else falls back to the supplied generic message.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch {
	case IsValidation(err), IsConflict(err), IsNotFound(err), IsForbidden(err):
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
