package api

import (
	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/wsconfig"
)

type serverConfig struct {
	logger logger.Logger
	mapErr apierror.MapFunc
	limits wsconfig.Config
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

// WithLogger sets the logger used for server errors and recovered panics.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorMapper sets the function that maps dependency errors to API
// kinds. Unmapped errors become Internal.
func WithErrorMapper(fn apierror.MapFunc) ServerOption {
	return func(c *serverConfig) {
		c.mapErr = fn
	}
}

// WithConnectionLimits sets the limits reported by GET /stats.
func WithConnectionLimits(limits wsconfig.Config) ServerOption {
	return func(c *serverConfig) {
		c.limits = limits
	}
}
