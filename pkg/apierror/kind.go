// Package apierror maps a closed set of API error kinds to HTTP status codes,
// labels and JSON response bodies.
package apierror

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Kind is one member of the closed error-kind set.
// The zero value is not a valid kind.
type Kind uint8

// Error kinds.
const (
	BadRequestKind Kind = iota + 1
	UnauthorizedKind
	ForbiddenKind
	NotFoundKind
	ConflictKind
	ValidationErrorKind
	InternalKind
	ServiceUnavailableKind
)

// kindInfo is the single source for every per-kind projection.
type kindInfo struct {
	name   string
	status int
	label  string
	grpc   codes.Code
	prefix string
}

var kinds = [...]kindInfo{
	BadRequestKind:         {"bad_request", http.StatusBadRequest, "Bad Request", codes.InvalidArgument, "Bad request"},
	UnauthorizedKind:       {"unauthorized", http.StatusUnauthorized, "Unauthorized", codes.Unauthenticated, "Unauthorized"},
	ForbiddenKind:          {"forbidden", http.StatusForbidden, "Forbidden", codes.PermissionDenied, "Forbidden"},
	NotFoundKind:           {"not_found", http.StatusNotFound, "Not Found", codes.NotFound, "Not found"},
	ConflictKind:           {"conflict", http.StatusConflict, "Conflict", codes.Aborted, "Conflict"},
	ValidationErrorKind:    {"validation_error", http.StatusUnprocessableEntity, "Validation Error", codes.InvalidArgument, "Validation error"},
	InternalKind:           {"internal", http.StatusInternalServerError, "Internal Server Error", codes.Internal, "Internal error"},
	ServiceUnavailableKind: {"service_unavailable", http.StatusServiceUnavailable, "Service Unavailable", codes.Unavailable, "Service unavailable"},
}

// Kinds returns all valid kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds)-1)
	for k := BadRequestKind; k <= ServiceUnavailableKind; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a member of the closed set.
func (k Kind) Valid() bool {
	return k >= BadRequestKind && k <= ServiceUnavailableKind
}

// info falls back to Internal for invalid kinds so every projection stays total.
func (k Kind) info() kindInfo {
	if !k.Valid() {
		return kinds[InternalKind]
	}
	return kinds[k]
}

// String returns the snake_case name of the kind, e.g. "not_found".
func (k Kind) String() string { return k.info().name }

// StatusCode returns the HTTP status code mapped to the kind.
func (k Kind) StatusCode() int { return k.info().status }

// Label returns the fixed human-readable label, e.g. "Not Found".
func (k Kind) Label() string { return k.info().label }

// GRPCCode returns the gRPC status code mapped to the kind.
func (k Kind) GRPCCode() codes.Code { return k.info().grpc }

// IsClientError reports whether the kind maps to a 4xx status.
func (k Kind) IsClientError() bool {
	s := k.StatusCode()
	return s >= 400 && s <= 499
}

// IsServerError reports whether the kind maps to a 5xx status.
func (k Kind) IsServerError() bool {
	s := k.StatusCode()
	return s >= 500 && s <= 599
}

// exposesDetails reports whether the message may be sent to clients.
// Internal messages are for server-side logs only.
func (k Kind) exposesDetails() bool {
	return k.Valid() && k != InternalKind
}
