package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FieldError is one structured validation failure from the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a non-2xx reply from the backend, with the FastAPI detail payload
// decoded into a message and optional per-field validation errors.
type Error struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// AuthFailure reports whether the backend rejected our bearer token.
func (e *Error) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Validation reports whether the reply carried structured field errors.
func (e *Error) Validation() bool {
	return len(e.Fields) > 0
}

// detailPayload is the FastAPI error envelope. detail is either a plain
// string or a list of {loc, msg} validation entries.
type detailPayload struct {
	Detail json.RawMessage `json:"detail"`
}

type validationEntry struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// newError decodes a non-2xx response body into an Error. Bodies that are
// not the expected envelope degrade to a status-only error.
func newError(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode}

	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return e
	}

	var message string
	if err := json.Unmarshal(payload.Detail, &message); err == nil {
		e.Message = message
		return e
	}

	var entries []validationEntry
	if err := json.Unmarshal(payload.Detail, &entries); err != nil {
		return e
	}
	for _, entry := range entries {
		field := "request"
		// loc is ["body", "field", ...]; the last element names the field
		if n := len(entry.Loc); n > 0 {
			var name string
			if err := json.Unmarshal(entry.Loc[n-1], &name); err == nil && name != "" {
				field = name
			}
		}
		e.Fields = append(e.Fields, FieldError{Field: field, Message: entry.Msg})
	}
	if len(e.Fields) > 0 {
		e.Message = "validation failed"
	}
	return e
}

// AsError extracts an *Error from err, or nil when err is not an upstream
// status error (network failures, decode failures).
func AsError(err error) *Error {
	var ue *Error
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}

// IsAuthFailure reports whether err is an upstream 401/403.
func IsAuthFailure(err error) bool {
	if ue := AsError(err); ue != nil {
		return ue.AuthFailure()
	}
	return false
}
