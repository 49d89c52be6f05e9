package apierror

// Response is the JSON error body sent to clients.
// Details is omitted from the encoded form when nil.
type Response struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

// NewResponse creates a body carrying only a label.
func NewResponse(label string) Response {
	return Response{Error: label}
}

// NewResponseWithDetails creates a body carrying a label and details.
func NewResponseWithDetails(label, details string) Response {
	return Response{Error: label, Details: &details}
}

// HasDetails reports whether the body carries details.
func (r Response) HasDetails() bool { return r.Details != nil }
