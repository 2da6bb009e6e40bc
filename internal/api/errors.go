package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError is a per-field validation failure reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error is the normalized form of every non-2xx API response. It carries the
// HTTP status, the server message (or a fallback derived from the status),
// field-level validation errors when present, and the raw response body.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
	Body    []byte
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s (status %d): %s", e.Message, e.Status, strings.Join(parts, "; "))
}

// newError builds an *Error from a non-2xx response body. Non-JSON bodies
// are kept verbatim as the message so proxy error pages stay debuggable.
func newError(status int, body []byte) *Error {
	apiErr := &Error{
		Status: status,
		Body:   body,
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
		apiErr.Fields = env.Errors
		return apiErr
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		apiErr.Message = msg
	} else {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// AsError unwraps err into an *Error if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is an authentication-class API error
// (401 or 403). Network failures and other HTTP errors return false: the
// guard must not demote a session over a transient fault.
func IsAuthError(err error) bool {
	apiErr, ok := AsError(err)
	if !ok {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}
