// Package swagger serves the embedded OpenAPI document.
package swagger

import (
	"bytes"
	"context"
	"net/http"
	"time"
)

const contentTypeYAML = "application/yaml; charset=utf-8"

// Register attaches the OpenAPI route to mux. GET also answers HEAD and
// conditional requests.
//
//	GET /openapi.yaml -> embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("swagger: nil mux")
	}
	mux.HandleFunc("GET /openapi.yaml", serveDocument)
}

func serveDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeYAML)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "openapi.yaml", time.Time{}, bytes.NewReader(OpenAPI))
}
