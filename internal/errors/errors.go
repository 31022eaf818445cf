package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure at the operation boundary.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindValidation       Kind = "VALIDATION_ERROR"
	KindDuplicate        Kind = "DUPLICATE"
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
	KindInternal         Kind = "INTERNAL_ERROR"
)

var (
	// ErrTemplateNotFound is returned when a template id or name has no match.
	ErrTemplateNotFound = NotFound("template not found")
	// ErrRecordNotFound is returned when a record id has no match.
	ErrRecordNotFound = NotFound("record not found")
	// ErrNoRecordsMatched is returned when a name search matches nothing.
	ErrNoRecordsMatched = NotFound("no records found with that name")
)

// Error is a classified failure carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	// Details holds one message per violated constraint for validation failures.
	Details []string
	// Key and Value identify the conflicting field of a duplicate.
	Key   string
	Value any
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind != KindNotFound {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind and message, so sentinel values work
// with errors.Is even after being wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation creates a validation error with one detail per violation.
func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// Duplicate creates a uniqueness violation error for key=value.
func Duplicate(key string, value any) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Message: fmt.Sprintf("%s already exists", key),
		Key:     key,
		Value:   value,
	}
}

// Unavailable wraps a store connectivity failure.
func Unavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "store unavailable", Err: err}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
	Key     string   `json:"key,omitempty"`
	Value   any      `json:"value,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []string
	Key        string
	Value      any
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
		Key:     e.Key,
		Value:   e.Value,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unclassified errors never
// leak their text.
func MapErrorToHTTP(err error) *HTTPError {
	var e *Error
	if !errors.As(err, &e) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", string(KindInternal))
	}
	switch e.Kind {
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, e.Message, string(e.Kind))
	case KindValidation:
		httpErr := NewHTTPError(http.StatusBadRequest, e.Message, string(e.Kind))
		httpErr.Details = e.Details
		return httpErr
	case KindDuplicate:
		httpErr := NewHTTPError(http.StatusConflict, e.Message, string(e.Kind))
		httpErr.Key = e.Key
		httpErr.Value = e.Value
		return httpErr
	case KindStoreUnavailable:
		return NewHTTPError(http.StatusServiceUnavailable, e.Message, string(e.Kind))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", string(KindInternal))
	}
}
