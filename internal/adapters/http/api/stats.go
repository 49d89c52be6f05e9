// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/httpkit/pkg/wsconfig"
)

// StatsProvider defines the interface for getting catalog statistics.
type StatsProvider interface {
	Count(ctx context.Context) int
	MaxPageLimit() uint64
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	limits        wsconfig.Config
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, limits wsconfig.Config) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, limits: limits}
}

type statsResponse struct {
	Items        int              `json:"items"`
	MaxPageLimit uint64           `json:"max_page_limit"`
	Connection   connectionLimits `json:"connection"`
}

type connectionLimits struct {
	IdleTimeoutSeconds float64 `json:"idle_timeout_seconds"`
	MaxMessageSize     int     `json:"max_message_size"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Items:        h.statsProvider.Count(r.Context()),
		MaxPageLimit: h.statsProvider.MaxPageLimit(),
		Connection: connectionLimits{
			IdleTimeoutSeconds: h.limits.IdleTimeout.Seconds(),
			MaxMessageSize:     h.limits.MaxMessageSize,
		},
	})
}
