// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
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

// ── Typed service errors ──────────────────────────────────────────────────────
// Services return *Error so handlers can map business failures onto the right
// HTTP status without string matching. Anything else bubbling up is treated as
// an internal failure (logged, generic message to the client).

// Kind classifies a service-level failure.
type Kind int

const (
	KindInternal   Kind = iota // unexpected store/infra error → 500
	KindNotFound               // entity id does not resolve → 404
	KindValidation             // missing/invalid input → 400
	KindConstraint             // FK / uniqueness / blocked delete → 400
)

// Error is the structured error descriptor produced by the service layer.
// Dependientes carries the count of blocking dependents when a guarded delete
// is rejected (0 when not applicable).
type Error struct {
	Kind         Kind
	Detail       string
	Dependientes int
	Err          error // wrapped cause, never serialized
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConstraint:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Detail: msg} }
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Detail: msg} }

func Constraint(msg string, dependientes int) *Error {
	return &Error{Kind: KindConstraint, Detail: msg, Dependientes: dependientes}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Detail: msg, Err: err}
}

// As extracts a typed *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
