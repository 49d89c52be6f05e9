// Package wsconfig holds the limits applied to long-lived connections such
// as websockets. It only carries values; the connection layer enforces them.
package wsconfig

import "time"

// Defaults.
const (
	DefaultIdleTimeout    = 300 * time.Second
	DefaultMaxMessageSize = 100 * 1024
)

// Config contains connection limits.
type Config struct {
	// IdleTimeout is how long to wait for a message before closing.
	IdleTimeout time.Duration `koanf:"idle_timeout" json:"idle_timeout"`

	// MaxMessageSize is the largest accepted message in bytes.
	MaxMessageSize int `koanf:"max_message_size" json:"max_message_size"`
}

// Default returns a Config with DefaultIdleTimeout and DefaultMaxMessageSize.
func Default() Config {
	return Config{
		IdleTimeout:    DefaultIdleTimeout,
		MaxMessageSize: DefaultMaxMessageSize,
	}
}

// New returns a Config with the given limits.
func New(idleTimeout time.Duration, maxMessageSize int) Config {
	return Config{IdleTimeout: idleTimeout, MaxMessageSize: maxMessageSize}
}

// WithIdleTimeout returns a copy of c with the idle timeout replaced.
func (c Config) WithIdleTimeout(d time.Duration) Config {
	c.IdleTimeout = d
	return c
}

// WithMaxMessageSize returns a copy of c with the message size limit replaced.
func (c Config) WithMaxMessageSize(n int) Config {
	c.MaxMessageSize = n
	return c
}
