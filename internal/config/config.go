// Package config loads shopfront's client configuration: defaults, then the
// JSON config file in the state directory, then environment overrides. A
// .env file next to the binary is folded into the environment before the
// override pass.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved client configuration.
type Config struct {
	// APIBaseURL is the backend root, including the /api prefix.
	APIBaseURL string `json:"api_base_url"`

	// RequestTimeoutSeconds bounds each backend request.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`

	// StateDir holds persisted records (cart, session) and logs.
	StateDir string `json:"-"`

	// Debug enables file logging.
	Debug bool `json:"debug"`
}

// RequestTimeout returns the request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration. The state directory defaults
// to ~/.shopfront, falling back to the working directory when the home
// directory cannot be resolved.
func Default() Config {
	dir := ".shopfront"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".shopfront")
	}
	return Config{
		APIBaseURL:            "http://localhost:3000/api",
		RequestTimeoutSeconds: 30,
		StateDir:              dir,
	}
}

// Load resolves the configuration. The config file is optional; a present
// but malformed file is an error, so a typo never silently reverts the user
// to defaults. Environment variables win over the file:
//
//	SHOPFRONT_API_URL     backend root URL
//	SHOPFRONT_STATE_DIR   state directory
//	SHOPFRONT_TIMEOUT     request timeout in seconds
//	SHOPFRONT_DEBUG       "true" enables file logging
func Load() (Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()
	if dir := os.Getenv("SHOPFRONT_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}

	path := filepath.Join(cfg.StateDir, "config.json")
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if v := os.Getenv("SHOPFRONT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SHOPFRONT_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid SHOPFRONT_TIMEOUT %q", v)
		}
		cfg.RequestTimeoutSeconds = secs
	}
	if v := os.Getenv("SHOPFRONT_DEBUG"); v != "" {
		cfg.Debug = v == "true" || v == "1"
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 30
	}
	return cfg, nil
}
