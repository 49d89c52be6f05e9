// Package static serves files from a read-only file system such as embed.FS,
// with optional single-page-application fallback routing.
package static

import (
	"bytes"
	"context"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/metrics"
)

const (
	defaultIndex       = "index.html"
	contentTypeHTML    = "text/html; charset=utf-8"
	contentTypeBinary  = "application/octet-stream"
	notFoundBody       = "Not Found"
	outcomeHit         = "hit"
	outcomeFallback    = "fallback"
	outcomeMiss        = "miss"
	outcomeNotAllowed  = "method_not_allowed"
	headerCacheControl = "Cache-Control"
)

// Responder looks up request paths in an immutable file system.
// It holds no mutable state and is safe for concurrent use.
type Responder struct {
	fsys         fs.FS
	index        string
	cacheControl string
	logger       logger.Logger
}

// New creates a Responder over fsys. fsys is typically an embed.FS narrowed
// with fs.Sub to the asset root.
func New(fsys fs.FS, opts ...Option) *Responder {
	if fsys == nil {
		panic("static: nil fs")
	}
	r := &Responder{fsys: fsys, index: defaultIndex}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SPA returns a handler that serves exact matches and falls back to the
// index document for extensionless paths (client-side routes).
func (s *Responder) SPA() http.Handler { return http.HandlerFunc(s.ServeSPA) }

// Static returns a handler that serves exact matches only.
func (s *Responder) Static() http.Handler { return http.HandlerFunc(s.ServeStatic) }

// ServeSPA serves the requested file. When it is absent and the path has no
// extension the index document is served instead; otherwise 404.
func (s *Responder) ServeSPA(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r) {
		return
	}
	name := s.resolve(r.URL.Path)
	if data, ok := s.lookup(name); ok {
		s.serve(w, r, name, ContentType(name), data, outcomeHit)
		return
	}
	if path.Ext(name) == "" {
		if data, ok := s.lookup(s.index); ok {
			s.debug(r.Context(), "spa fallback", name)
			s.serve(w, r, s.index, contentTypeHTML, data, outcomeFallback)
			return
		}
	}
	s.notFound(w, r, name)
}

// ServeStatic serves the requested file or 404. The root path maps to the
// index document.
func (s *Responder) ServeStatic(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r) {
		return
	}
	name := s.resolve(r.URL.Path)
	if data, ok := s.lookup(name); ok {
		s.serve(w, r, name, ContentType(name), data, outcomeHit)
		return
	}
	s.notFound(w, r, name)
}

// ContentType guesses the MIME type from the file extension. Unknown
// extensions yield application/octet-stream.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return contentTypeBinary
}

// resolve maps a URL path to an fs.FS key; the empty path maps to the index.
func (s *Responder) resolve(urlPath string) string {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return s.index
	}
	return name
}

func (s *Responder) lookup(name string) ([]byte, bool) {
	if !fs.ValidPath(name) {
		return nil, false
	}
	// Directories and unreadable entries count as absent.
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Responder) serve(w http.ResponseWriter, r *http.Request, name, contentType string, data []byte, outcome string) {
	metrics.RecordStaticAsset(outcome)
	w.Header().Set("Content-Type", contentType)
	if s.cacheControl != "" {
		w.Header().Set(headerCacheControl, s.cacheControl)
	}
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

func (s *Responder) notFound(w http.ResponseWriter, r *http.Request, name string) {
	metrics.RecordStaticAsset(outcomeMiss)
	s.debug(r.Context(), "static asset not found", name)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}

func (s *Responder) allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	metrics.RecordStaticAsset(outcomeNotAllowed)
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func (s *Responder) debug(ctx context.Context, msg, name string) {
	if s.logger != nil {
		s.logger.Debug(ctx, msg, logger.String("path", name))
	}
}
