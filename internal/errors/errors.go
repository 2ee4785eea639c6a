// Package errors defines the coded errors the colorhash server reports to clients.
//
// Services return *Error values; the API layer renders the Code and maps it to
// an HTTP status:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    ...
//	}
//
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    status := domainErr.HTTPStatus()
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/listenupapp/colorhash/pkg/colorhash"
)

// Re-export standard library functions for convenience.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeValidation      Code = "VALIDATION"
	CodeOutOfRange      Code = "OUT_OF_RANGE"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeInternal        Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status for the code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation, CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeOutOfRange:
		return http.StatusUnprocessableEntity
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status for the error's code.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// GetStatus lets handlers return *Error directly; huma reads the response
// status through this method.
func (e *Error) GetStatus() int {
	return e.HTTPStatus()
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// Sentinels for errors.Is.
var (
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists   = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrUnauthorized    = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden       = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation error"}
	ErrOutOfRange      = &Error{Code: CodeOutOfRange, Message: "value out of range"}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrRateLimited     = &Error{Code: CodeRateLimited, Message: "rate limit exceeded"}
	ErrInternal        = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFoundf creates a not found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExistsf creates an already exists error.
func AlreadyExistsf(format string, args ...any) *Error {
	return &Error{Code: CodeAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error carrying per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps err with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// FromColorError translates errors from the colorhash library. Range problems
// become OUT_OF_RANGE, malformed arguments INVALID_ARGUMENT. Any other error
// is returned unchanged, including nil.
func FromColorError(err error) error {
	var pe *colorhash.ParamError
	if !errors.As(err, &pe) {
		return err
	}

	code := CodeInvalidArgument
	if errors.Is(err, colorhash.ErrRange) {
		code = CodeOutOfRange
	}
	return &Error{
		Code:    code,
		Message: pe.Msg,
		Details: map[string]string{"param": pe.Param},
		cause:   err,
	}
}
