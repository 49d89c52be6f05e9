package apierror

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCCode returns the gRPC code for the error's kind.
func (e *Error) GRPCCode() codes.Code { return e.kind().GRPCCode() }

// GRPCStatus projects the error onto a gRPC status. The status message
// follows the same rule as the HTTP body: Internal errors expose only their
// label.
//
// Having this method lets status.FromError and status.Code recognise *Error
// anywhere in a wrapped chain. A nil *Error projects to a bare Internal status.
func (e *Error) GRPCStatus() *status.Status {
	msg := e.Label()
	if e != nil && e.Kind.exposesDetails() {
		msg = e.Message
	}
	return status.New(e.GRPCCode(), msg)
}
