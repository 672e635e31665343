// Package domainerrors carries error codes from services to transports.
//
// Services translate store sentinels and validation failures into coded
// errors; the HTTP layer maps codes onto status lines without inspecting
// error strings. Wrap preserves the cause chain for errors.Is/As.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeValidation marks bad or missing input fields, including
	// unknown filter keys.
	CodeValidation Code = "validation_error"

	// CodeUnauthorized marks a caller that lacks ownership of the
	// entity it tries to mutate.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden marks an operation the caller's role may never
	// perform regardless of ownership.
	CodeForbidden Code = "forbidden"

	// CodeNotFound marks an entity that is absent or filtered out of
	// the caller's visible scope.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a uniqueness violation.
	CodeConflict Code = "conflict"

	// CodeTimeout marks a transaction aborted by context expiry.
	CodeTimeout Code = "timeout"

	// CodeInternal marks a storage or infrastructure failure.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a coded error around a cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns the outermost code carried by err, or CodeInternal when
// err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost coded message, or an empty string.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code onto an HTTP status line.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
