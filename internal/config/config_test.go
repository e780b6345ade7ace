package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ENV", "HTTP_ADDR", "BACKEND_URL", "BACKEND_TIMEOUT", "TIMEZONE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "Asia/Taipei", cfg.Location.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BACKEND_URL", "https://market.example.com")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown env", func(t *testing.T) {
		t.Setenv("ENV", "staging")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("backend url", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("BACKEND_URL", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "")
		t.Setenv("BACKEND_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("timezone", func(t *testing.T) {
		t.Setenv("BACKEND_TIMEOUT", "")
		t.Setenv("TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_LogLevelCase(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("LOG_LEVEL", "verbose")
	_, err = Load()
	assert.Error(t, err)
}
