// Package site serves the embedded single-page catalog UI.
package site

import (
	"context"
	"net/http"

	"github.com/okian/httpkit/pkg/static"
)

// Register mounts the SPA at "/". More specific routes registered on the same
// mux take precedence; every other GET falls through to the SPA.
func Register(_ context.Context, mux *http.ServeMux, opts ...static.Option) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewRootHandler(opts...))
}

// NewRootHandler returns the SPA handler over the embedded assets.
func NewRootHandler(opts ...static.Option) http.Handler {
	return static.New(FS(), opts...).SPA()
}
