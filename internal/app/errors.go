package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/httpkit/internal/adapters/repository"
	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/errtraits"
)

// ErrNotStarted is returned by operations invoked before Start.
var ErrNotStarted = errors.New("service not started")

// InvalidItemError reports a rejected item field.
type InvalidItemError struct {
	Field  string
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// APIError implements apierror.Converter.
func (e *InvalidItemError) APIError() *apierror.Error {
	return apierror.ValidationError(e.Error())
}

// MapError maps catalog and context failures to API kinds. Anything it does
// not recognise is left to apierror's Internal fallback.
func MapError(err error) *apierror.Error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apierror.NotFound(err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		return apierror.Conflict(err.Error())
	case errors.Is(err, ErrNotStarted):
		return apierror.ServiceUnavailable("service is starting")
	case errors.Is(err, context.DeadlineExceeded), errtraits.IsTimeout(err):
		return apierror.ServiceUnavailable("request timed out")
	case errors.Is(err, context.Canceled):
		return apierror.ServiceUnavailable("request cancelled")
	case errtraits.IsRecoverable(err):
		return apierror.ServiceUnavailable("temporarily unavailable, retry later")
	}
	return nil
}

// ToAPIError converts any service error into an *apierror.Error.
func ToAPIError(err error) *apierror.Error {
	return apierror.FromFunc(err, MapError)
}
