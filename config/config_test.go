package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0, cfg.RetryMax)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.EqualValues(t, 64<<20, cfg.MaxUploadBytes)
}

func TestLoad_PrefixedAndBareVariables(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BOOKPOT_BACKEND_URL", "https://api.local.bookpot.kr")
	t.Setenv("BOOKPOT_REQUEST_TIMEOUT", "5s")
	t.Setenv("BOOKPOT_SECURE_COOKIES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://api.local.bookpot.kr", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.SecureCookies)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-http backend", key: "BOOKPOT_BACKEND_URL", value: "ftp://example.com"},
		{name: "negative retries", key: "BOOKPOT_RETRY_MAX", value: "-1"},
		{name: "unknown log format", key: "BOOKPOT_LOG_FORMAT", value: "xml"},
		{name: "unparsable duration", key: "BOOKPOT_REQUEST_TIMEOUT", value: "soon"},
		{name: "zero timeout", key: "BOOKPOT_REQUEST_TIMEOUT", value: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestHandlerTimeout_FollowsRequestTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Minute, Config{RequestTimeout: 60 * time.Second}.HandlerTimeout())

	t.Setenv("BOOKPOT_REQUEST_TIMEOUT", "90s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 450*time.Second, cfg.HandlerTimeout())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "verbose"}.SlogLevel())
}
