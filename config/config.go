// Package config loads the dashboard's runtime settings from the environment.
//
// Every setting is read from BOOKPOT_<NAME> first and falls back to the bare
// <NAME> (so PORT works the way hosting platforms expect).
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name looked up by Load.
const EnvPrefix = "BOOKPOT"

// maxSequentialBackendCalls is the longest chain of backend calls a single
// dashboard request makes: an ebook update sends its metadata and then up to
// four asset uploads one after another.
const maxSequentialBackendCalls = 5

type Config struct {
	Port            string        `envconfig:"PORT" default:"3000"`
	BackendURL      string        `envconfig:"BACKEND_URL" default:"http://localhost:8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	RetryMax        int           `envconfig:"RETRY_MAX" default:"0"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	SecureCookies   bool          `envconfig:"SECURE_COOKIES" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"67108864"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be expressed as envconfig defaults.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.BackendURL)
	}
	if c.RetryMax < 0 {
		return fmt.Errorf("retry max cannot be negative: %d", c.RetryMax)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %s", c.RequestTimeout)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive: %d", c.MaxUploadBytes)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}

// HandlerTimeout bounds a whole inbound request. It leaves room for the
// longest sequential chain of backend calls, each allowed RequestTimeout.
func (c Config) HandlerTimeout() time.Duration {
	return c.RequestTimeout * maxSequentialBackendCalls
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
