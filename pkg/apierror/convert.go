package apierror

import (
	"errors"
)

// Converter is implemented by domain errors that know which API kind they
// become. The calling domain decides the mapping; this package never
// inspects message text to choose a kind.
type Converter interface {
	APIError() *Error
}

// MapFunc maps a domain error to an API error. It returns nil when it does
// not recognise err.
type MapFunc func(err error) *Error

// From converts err into an *Error.
//
// Resolution order: an *Error already in the chain, then the first Converter
// in the chain, then Internal with err attached as the cause. A nil err
// yields nil.
func From(err error) *Error {
	return FromFunc(err, nil)
}

// FromFunc is like From but consults fn before falling back to Internal.
func FromFunc(err error, fn MapFunc) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var conv Converter
	if errors.As(err, &conv) {
		if out := conv.APIError(); out != nil {
			return out.WithCause(err)
		}
	}
	if fn != nil {
		if out := fn(err); out != nil {
			return out.WithCause(err)
		}
	}
	return Internal(err.Error()).WithCause(err)
}
