package static

import (
	"strings"

	"github.com/okian/httpkit/pkg/logger"
)

// Option applies a configuration option to the Responder.
type Option func(*Responder)

// WithIndex sets the fallback document, "index.html" by default.
func WithIndex(name string) Option {
	return func(r *Responder) {
		if name = strings.TrimPrefix(strings.TrimSpace(name), "/"); name != "" {
			r.index = name
		}
	}
}

// WithCacheControl sets the Cache-Control header sent with every served file.
func WithCacheControl(value string) Option {
	return func(r *Responder) {
		r.cacheControl = strings.TrimSpace(value)
	}
}

// WithLogger enables debug logging of fallbacks and misses.
func WithLogger(l logger.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.logger = l
		}
	}
}
