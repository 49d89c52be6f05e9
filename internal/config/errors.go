package config

import "errors"

var (
	// ErrInvalidConfig is returned by Validate and wraps every rule violation.
	ErrInvalidConfig = errors.New("config: invalid value")
	// ErrLoadConfig wraps failures reading the config file or environment.
	ErrLoadConfig = errors.New("config: load failed")
)
