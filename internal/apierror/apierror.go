// Package apierror provides the canonical error type for the whole service
// layer and the JSON error envelopes returned to clients. Every service
// returns a *Error carrying a Kind; handlers translate the Kind into an HTTP
// status. No service signals failure through booleans or silent nils.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a service error.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict" // business rule violation
	KindInvalid      Kind = "invalid"  // malformed or semantically bad input
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal" // unexpected / database
)

// Error is the single error type crossing the service boundary.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, never exposed to clients
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }
func Invalid(msg string) *Error      { return &Error{Kind: KindInvalid, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }

// Internal wraps an unexpected error with a client-safe message.
func Internal(err error, msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the Kind of err; unrecognized errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error Kind to the status code handlers should write.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the JSON envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
