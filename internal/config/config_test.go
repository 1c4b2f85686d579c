package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OUTREACH_API_URL", "http://localhost:8765")
	t.Setenv("OUTREACH_POLL_INTERVAL", "")
	t.Setenv("OUTREACH_REQUEST_TIMEOUT", "")
	t.Setenv("OUTREACH_CACHE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8765", cfg.APIBaseURL)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Contains(t, cfg.CachePath, ".outreach")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OUTREACH_API_URL", "http://localhost:8765")
	t.Setenv("OUTREACH_POLL_INTERVAL", "250ms")
	t.Setenv("OUTREACH_REQUEST_TIMEOUT", "5s")
	t.Setenv("OUTREACH_CACHE_PATH", "/tmp/outreach-test.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/outreach-test.db", cfg.CachePath)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		t.Setenv("OUTREACH_API_URL", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OUTREACH_API_URL")
	})

	t.Run("malformed poll interval", func(t *testing.T) {
		t.Setenv("OUTREACH_API_URL", "http://localhost:8765")
		t.Setenv("OUTREACH_POLL_INTERVAL", "soon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OUTREACH_POLL_INTERVAL")
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		APIBaseURL:     "http://localhost:8765",
		PollInterval:   time.Second,
		RequestTimeout: time.Second,
	}
	assert.NoError(t, cfg.Validate())

	cfg.PollInterval = 0
	assert.Error(t, cfg.Validate())

	cfg.PollInterval = time.Second
	cfg.RequestTimeout = -time.Second
	assert.Error(t, cfg.Validate())
}
