// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/httpkit/internal/adapters/repository"
	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/metrics"
	"github.com/okian/httpkit/pkg/pagination"
	"github.com/okian/httpkit/pkg/wsconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListItems(ctx context.Context, q pagination.Query) (pagination.Response[Item], error)
	GetItem(ctx context.Context, id string) (Item, error)
	CreateItem(ctx context.Context, name string) (Item, error)
	Count(ctx context.Context) int
	MaxPageLimit() uint64
}

// Item mirrors the read shape returned by catalog queries.
type Item = repository.Item

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	itemsHandler  *ItemsHandler

	logger logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	cfg := serverConfig{limits: wsconfig.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps, cfg.limits),
		itemsHandler:  NewItemsHandler(deps, cfg.logger, cfg.mapErr),
		logger:        cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.Handle("GET /stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("GET /items", s.wrap(s.itemsHandler.HandleList, "items_list"))
	mux.Handle("POST /items", s.wrap(s.itemsHandler.HandleCreate, "items_create"))
	mux.Handle("GET /items/{id}", s.wrap(s.itemsHandler.HandleGet, "items_get"))

	// Other methods on API paths get a JSON 405 instead of reaching the
	// catch-all site handler.
	mux.Handle("/items", s.wrap(methodNotAllowed("GET, HEAD, POST"), "items"))
	mux.Handle("/items/{id}", s.wrap(methodNotAllowed("GET, HEAD"), "items_get"))
}

// wrap applies the middleware chain. Recover sits inside the metrics
// recorder so recovered panics are counted as 500s.
func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestID(MetricsMiddleware(Recover(h, s.logger).ServeHTTP, endpoint))
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		metrics.RecordAPIError("method_not_allowed", "client_error")
		w.Header().Set("Allow", allow)
		apierror.JSONError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorWriter renders handler failures through apierror.
type errorWriter struct {
	log    logger.Logger
	mapErr apierror.MapFunc
}

func (e *errorWriter) write(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierror.FromFunc(err, e.mapErr)
	log := e.log
	if log != nil {
		log = log.Named("api")
	}
	writeAPIError(r.Context(), log, w, apiErr)
}

// writeAPIError counts and renders e.
func writeAPIError(ctx context.Context, log logger.Logger, w http.ResponseWriter, e *apierror.Error) {
	if e == nil {
		return
	}
	metrics.RecordAPIError(e.Kind.String(), apierror.Class(e))
	apierror.WriteLogged(ctx, log, w, e)
}
