// Package pagination builds paginated list responses and clamps page-size
// queries.
package pagination

import "math"

// Response wraps one page of a list result.
//
// HasMore is derived from Offset, len(Data) and Total by the constructors;
// build new values with New, SinglePage or Map rather than setting it.
type Response[T any] struct {
	Data    []T     `json:"data"`
	Total   uint64  `json:"total"`
	Limit   *uint64 `json:"limit,omitempty"`
	Offset  uint64  `json:"offset"`
	HasMore bool    `json:"has_more"`
}

// New creates a page of items out of total, starting at offset.
// A nil items slice is encoded as an empty array.
func New[T any](items []T, total uint64, limit *uint64, offset uint64) Response[T] {
	if items == nil {
		items = []T{}
	}
	returned := uint64(len(items))
	return Response[T]{
		Data:    items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: addSaturating(offset, returned) < total,
	}
}

// SinglePage creates a response holding the complete result set.
func SinglePage[T any](items []T) Response[T] {
	if items == nil {
		items = []T{}
	}
	return Response[T]{
		Data:  items,
		Total: uint64(len(items)),
	}
}

// Map applies f to every item in order and keeps the page metadata.
func Map[T, U any](r Response[T], f func(T) U) Response[U] {
	data := make([]U, len(r.Data))
	for i, v := range r.Data {
		data[i] = f(v)
	}
	return Response[U]{
		Data:    data,
		Total:   r.Total,
		Limit:   r.Limit,
		Offset:  r.Offset,
		HasMore: r.HasMore,
	}
}

// Limit returns a pointer to v, for use as the optional limit of New.
func Limit(v uint64) *uint64 { return &v }

func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
