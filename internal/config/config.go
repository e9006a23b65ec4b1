// Package config defines process configuration and its loading order.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds process configuration.
type Config struct {
	// DBPath is the SQLite database location. Empty means the CLI
	// default under the user's home directory.
	DBPath string `koanf:"db_path"`

	// APIBaseURL is the api-web endpoint root.
	APIBaseURL string `koanf:"api_base_url"`

	// StatsAPIBaseURL is the stats REST endpoint root (shift charts).
	StatsAPIBaseURL string `koanf:"stats_api_base_url"`

	// HTTPTimeoutSeconds bounds every outbound API request.
	HTTPTimeoutSeconds int `koanf:"http_timeout_seconds"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		APIBaseURL:         "https://api-web.nhle.com/v1",
		StatsAPIBaseURL:    "https://api.nhle.com/stats/rest/en",
		HTTPTimeoutSeconds: 30,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if NHLMETRICS_CONFIG is set
//  3. env (prefix NHLMETRICS_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("NHLMETRICS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: NHLMETRICS_DB_PATH, NHLMETRICS_API_BASE_URL, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("NHLMETRICS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "nhlmetrics_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, errors.New("http_timeout_seconds must be positive")
	}
	if cfg.APIBaseURL == "" || cfg.StatsAPIBaseURL == "" {
		return nil, errors.New("api base urls must not be empty")
	}
	return &cfg, nil
}
