package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvConfigFile names the variable holding an optional YAML file path.
	EnvConfigFile = "HTTPKIT_CONFIG"
	envPrefix     = "HTTPKIT_"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HTTPKIT_CONFIG is set
//  3. env (prefix HTTPKIT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// HTTPKIT_MAX_PAGE_LIMIT -> max_page_limit. Keys stay flat so underscores
	// match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxPageLimit == 0:
		return fmt.Errorf("%w: max_page_limit must be positive", ErrInvalidConfig)
	case c.DefaultPageLimit > c.MaxPageLimit:
		return fmt.Errorf("%w: default_page_limit %d exceeds max_page_limit %d",
			ErrInvalidConfig, c.DefaultPageLimit, c.MaxPageLimit)
	case c.WSIdleTimeout <= 0:
		return fmt.Errorf("%w: ws_idle_timeout must be positive", ErrInvalidConfig)
	case c.WSMaxMessageSize <= 0:
		return fmt.Errorf("%w: ws_max_message_size must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
