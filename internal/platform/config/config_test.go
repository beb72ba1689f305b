package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("API_KEY", "key")
	t.Setenv("MARKER_FRESHNESS", "")
	t.Setenv("BASE_URL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://healthchecks.io/api/v3/", cfg.Heartbeat.APIURL)
	assert.Equal(t, "https://hc-ping.com", cfg.Heartbeat.PingURL)
	assert.Equal(t, DefaultMarkerFreshness, cfg.Markers.Freshness)
	assert.Equal(t, 30*time.Second, cfg.Whois.Timeout)
	assert.Equal(t, "file", cfg.Markers.Backend)
}

func TestFromEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("WHOIS_TIMEOUT", "soon")

	cfg, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WHOIS_TIMEOUT")
	assert.Equal(t, 30*time.Second, cfg.Whois.Timeout)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		t.Setenv("API_KEY", "key")
		cfg, err := FromEnv()
		require.NoError(t, err)
		return cfg
	}

	t.Run("missing api key is fatal", func(t *testing.T) {
		cfg := base()
		cfg.Heartbeat.APIKey = ""
		_, err := cfg.Validate()
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("missing registrar credentials only warn", func(t *testing.T) {
		cfg := base()
		cfg.Registrar.Key = ""
		warnings, err := cfg.Validate()
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
	})

	t.Run("redis backend needs url", func(t *testing.T) {
		cfg := base()
		cfg.Markers.Backend = "redis"
		cfg.Redis.URL = ""
		_, err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("ping url must be http", func(t *testing.T) {
		cfg := base()
		cfg.Heartbeat.PingURL = "hc-ping.com"
		_, err := cfg.Validate()
		assert.Error(t, err)
	})
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DOMAIN_FILE=/srv/domains.txt\n"), 0o600))
	t.Setenv("DOMAIN_FILE", "")
	os.Unsetenv("DOMAIN_FILE")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "/srv/domains.txt", cfg.DomainFile)
}

func TestLoadIgnoresMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
