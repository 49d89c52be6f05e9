// Package config defines the reference service configuration and its
// layered loader.
package config

import (
	"time"

	"github.com/okian/httpkit/pkg/wsconfig"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxPageLimit caps GET /items?limit.
	MaxPageLimit uint64 `koanf:"max_page_limit"`

	// DefaultPageLimit is used when a list request omits limit. Zero means
	// MaxPageLimit.
	DefaultPageLimit uint64 `koanf:"default_page_limit"`

	// WSIdleTimeout and WSMaxMessageSize bound long-lived connections.
	WSIdleTimeout    time.Duration `koanf:"ws_idle_timeout"`
	WSMaxMessageSize int           `koanf:"ws_max_message_size"`

	// StaticCacheControl is sent with every embedded asset. Empty disables it.
	StaticCacheControl string `koanf:"static_cache_control"`

	// SeedItems are created in the catalog at startup.
	SeedItems []string `koanf:"seed_items"`
}

// New creates a Config populated with defaults.
func New() *Config {
	ws := wsconfig.Default()
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		MaxPageLimit:       100,
		WSIdleTimeout:      ws.IdleTimeout,
		WSMaxMessageSize:   ws.MaxMessageSize,
		StaticCacheControl: "public, max-age=300",
		SeedItems:          []string{"alpha", "bravo", "charlie"},
	}
}

// WS returns the connection limits as a wsconfig.Config.
func (c *Config) WS() wsconfig.Config {
	return wsconfig.New(c.WSIdleTimeout, c.WSMaxMessageSize)
}
