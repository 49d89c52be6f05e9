package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/httpkit/pkg/apierror"
)

// Query parameter names.
const (
	ParamLimit  = "limit"
	ParamOffset = "offset"
)

// Query holds the optional paging parameters of a list request.
type Query struct {
	Limit  *uint64 `json:"limit,omitempty"`
	Offset *uint64 `json:"offset,omitempty"`
}

// EffectiveLimit returns the requested limit clamped down to maxLimit. An
// absent limit defaults to maxLimit.
func (q Query) EffectiveLimit(maxLimit uint64) uint64 {
	if q.Limit == nil {
		return maxLimit
	}
	return min(*q.Limit, maxLimit)
}

// EffectiveOffset returns the requested offset or 0.
func (q Query) EffectiveOffset() uint64 {
	if q.Offset == nil {
		return 0
	}
	return *q.Offset
}

// ParseQuery reads limit and offset from URL query values. Empty values are
// treated as absent; anything that is not an unsigned integer is a
// BadRequest error.
func ParseQuery(values url.Values) (Query, *apierror.Error) {
	limit, err := parseParam(values, ParamLimit)
	if err != nil {
		return Query{}, err
	}
	offset, err := parseParam(values, ParamOffset)
	if err != nil {
		return Query{}, err
	}
	return Query{Limit: limit, Offset: offset}, nil
}

func parseParam(values url.Values, name string) (*uint64, *apierror.Error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apierror.Newf(apierror.BadRequestKind, "%s must be a non-negative integer", name).WithCause(err)
	}
	return &v, nil
}
