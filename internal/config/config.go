// Package config loads ambient CLI configuration from the environment,
// following the same os.Getenv-plus-strconv-default pattern used for the
// application configuration it is grounded on.
package config

import (
	"os"
	"strconv"
)

// Config holds settings for the ambient semindex CLI, read once at startup.
type Config struct {
	Workers      int
	MaxFileBytes int64
	IncludeTests bool
	MaxDepth     int
	MaxFiles     int
}

// LoadConfig loads configuration from environment variables, falling back
// to defaults when a variable is unset or unparseable.
func LoadConfig() *Config {
	cfg := &Config{
		Workers:      0,
		MaxFileBytes: 5 * 1024 * 1024,
		IncludeTests: false,
		MaxDepth:     0,
		MaxFiles:     0,
	}

	if v := os.Getenv("SEMINDEX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Workers = n
		}
	}

	if v := os.Getenv("SEMINDEX_MAX_FILE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxFileBytes = n
		}
	}

	if v := os.Getenv("SEMINDEX_INCLUDE_TESTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IncludeTests = b
		}
	}

	if v := os.Getenv("SEMINDEX_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxDepth = n
		}
	}

	if v := os.Getenv("SEMINDEX_MAX_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxFiles = n
		}
	}

	return cfg
}
