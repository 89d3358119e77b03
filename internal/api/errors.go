package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// CodeSlotUnavailable is returned by the backend when a slot was taken
// between listing and booking, regardless of HTTP status.
const CodeSlotUnavailable = "SLOT_UNAVAILABLE"

// Error is a non-2xx backend response. The backend arbitrates all conflict
// and validation rules; callers map Status/Code to user-facing behavior.
type Error struct {
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status=%d)", e.Message, e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api: %s (status=%d)", e.Code, e.Status)
	}
	return fmt.Sprintf("api: http status %d", e.Status)
}

// IsConflict reports whether err is a slot-contention response: HTTP 409 or
// the SLOT_UNAVAILABLE backend code at any status.
func IsConflict(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusConflict || apiErr.Code == CodeSlotUnavailable
}

// IsNotFound reports whether err is an HTTP 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an HTTP 401 or 403 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsValidation reports whether err is an HTTP 400 response.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// IsServer reports whether err is an HTTP 5xx response.
func IsServer(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func decodeError(status int, body []byte) error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		msg := string(body)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return &Error{Status: status, Message: msg, Body: string(body)}
	}
	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}
	return &Error{Status: status, Code: parsed.Code, Message: msg, Body: string(body)}
}
