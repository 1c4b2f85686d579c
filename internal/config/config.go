// Package config provides configuration loading and validation for the CLI
// and dashboard. Values come from the environment; main loads a .env file
// first when one exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults.
const (
	DefaultPollInterval   = time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds the client configuration.
type Config struct {
	// APIBaseURL is the root of the outreach API server, e.g.
	// "http://localhost:8765". Required.
	APIBaseURL string

	// PollInterval is the delay between background-task status polls.
	PollInterval time.Duration

	// RequestTimeout is the per-request HTTP timeout.
	RequestTimeout time.Duration

	// CachePath is the sqlite snapshot cache location. Empty disables the
	// cache.
	CachePath string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:     os.Getenv("OUTREACH_API_URL"),
		PollInterval:   DefaultPollInterval,
		RequestTimeout: DefaultRequestTimeout,
	}

	if raw := os.Getenv("OUTREACH_POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid OUTREACH_POLL_INTERVAL %q: %w", raw, err)
		}
		cfg.PollInterval = d
	}

	if raw := os.Getenv("OUTREACH_REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid OUTREACH_REQUEST_TIMEOUT %q: %w", raw, err)
		}
		cfg.RequestTimeout = d
	}

	if raw := os.Getenv("OUTREACH_CACHE_PATH"); raw != "" {
		cfg.CachePath = raw
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.CachePath = filepath.Join(home, ".outreach", "cache.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config error: OUTREACH_API_URL is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("config error: poll interval must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config error: request timeout must be positive")
	}
	return nil
}
