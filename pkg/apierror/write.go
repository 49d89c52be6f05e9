package apierror

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/httpkit/pkg/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Write renders err as a JSON body with its mapped status code.
// Errors that are not *Error are converted with From.
func Write(w http.ResponseWriter, err error) {
	e := From(err)
	if e == nil {
		return
	}
	JSONError(w, e.StatusCode(), e.Label(), e.Render().Details)
}

// WriteLogged is Write that also logs server errors, including the message
// and cause that are withheld from the client.
func WriteLogged(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	e := From(err)
	if e == nil {
		return
	}
	if log != nil && e.IsServerError() {
		fields := []logger.Field{
			logger.String("kind", e.Kind.String()),
			logger.Int("status", e.StatusCode()),
			logger.String("message", e.Message),
		}
		if e.Cause != nil {
			fields = append(fields, logger.Error(e.Cause))
		}
		log.Error(ctx, "request failed", fields...)
	}
	Write(w, e)
}

// JSONError writes an error body with an explicit status, label and details.
func JSONError(w http.ResponseWriter, status int, label string, details *string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: label, Details: details})
}

// Class names the status family of e: "client_error", "server_error" or
// "unknown".
func Class(e *Error) string {
	switch {
	case e.IsServerError():
		return "server_error"
	case e.IsClientError():
		return "client_error"
	default:
		return "unknown"
	}
}
