package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an application error.
type Type string

const (
	TypeBadRequest      Type = "BAD_REQUEST"
	TypeUnauthenticated Type = "UNAUTHENTICATED"
	TypeForbidden       Type = "FORBIDDEN"
	TypeNotFound        Type = "NOT_FOUND"
	TypeConflict        Type = "CONFLICT"
	TypeInternal        Type = "INTERNAL"
)

// Error is returned by services and mapped to an HTTP response by the
// server's error handler.
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error type.
func (e *Error) Status() int {
	switch e.Type {
	case TypeBadRequest:
		return http.StatusBadRequest
	case TypeUnauthenticated:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(message string) *Error {
	return &Error{Type: TypeBadRequest, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Type: TypeUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Type: TypeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

// Internal wraps a store or infrastructure failure. The wrapped error is
// logged but never shown to the client.
func Internal(message string, err error) *Error {
	return &Error{Type: TypeInternal, Message: message, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether err carries an application error of type t.
func Is(err error, t Type) bool {
	ae, ok := As(err)
	return ok && ae.Type == t
}
