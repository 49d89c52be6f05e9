package apierror

import (
	"fmt"
)

// Error is an API error of one kind carrying one free-text message.
//
// The message of an Internal error is never rendered to clients; attach the
// underlying failure with WithCause so it can be logged server-side.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error {
	if !kind.Valid() {
		kind = InternalKind
	}
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// BadRequest creates a 400 error.
func BadRequest(msg string) *Error { return New(BadRequestKind, msg) }

// Unauthorized creates a 401 error.
func Unauthorized(msg string) *Error { return New(UnauthorizedKind, msg) }

// Forbidden creates a 403 error.
func Forbidden(msg string) *Error { return New(ForbiddenKind, msg) }

// NotFound creates a 404 error.
func NotFound(msg string) *Error { return New(NotFoundKind, msg) }

// Conflict creates a 409 error.
func Conflict(msg string) *Error { return New(ConflictKind, msg) }

// ValidationError creates a 422 error.
func ValidationError(msg string) *Error { return New(ValidationErrorKind, msg) }

// Internal creates a 500 error. The message is never sent to clients.
func Internal(msg string) *Error { return New(InternalKind, msg) }

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(msg string) *Error { return New(ServiceUnavailableKind, msg) }

// Error implements error as "<prefix>: <message>", e.g. "Not found: item 7".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Kind.info().prefix, e.Message)
}

// kind treats a nil *Error as Internal so every method is nil-safe.
func (e *Error) kind() Kind {
	if e == nil {
		return InternalKind
	}
	return e.Kind
}

// Unwrap returns the attached cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// WithCause returns a copy of e with err attached as its cause.
func (e *Error) WithCause(err error) *Error {
	if err == nil || e == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// StatusCode returns the HTTP status code for the error's kind.
func (e *Error) StatusCode() int { return e.kind().StatusCode() }

// Label returns the fixed label for the error's kind.
func (e *Error) Label() string { return e.kind().Label() }

// IsClientError reports whether the error maps to a 4xx status.
func (e *Error) IsClientError() bool { return e.kind().IsClientError() }

// IsServerError reports whether the error maps to a 5xx status.
func (e *Error) IsServerError() bool { return e.kind().IsServerError() }

// Render builds the client-facing body. Internal errors carry no details.
func (e *Error) Render() Response {
	if !e.kind().exposesDetails() {
		return NewResponse(e.Label())
	}
	return NewResponseWithDetails(e.Label(), e.Message)
}
