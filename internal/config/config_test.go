package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOPFRONT_STATE_DIR", t.TempDir())
	t.Setenv("SHOPFRONT_API_URL", "")
	t.Setenv("SHOPFRONT_TIMEOUT", "")
	t.Setenv("SHOPFRONT_DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	assert.Equal(t, 30, cfg.RequestTimeoutSeconds)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHOPFRONT_STATE_DIR", dir)
	t.Setenv("SHOPFRONT_API_URL", "")
	t.Setenv("SHOPFRONT_TIMEOUT", "")
	t.Setenv("SHOPFRONT_DEBUG", "")

	body := `{"api_base_url":"https://shop.example.com/api","request_timeout_seconds":10,"debug":true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 10, cfg.RequestTimeoutSeconds)
	assert.True(t, cfg.Debug)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHOPFRONT_STATE_DIR", dir)
	t.Setenv("SHOPFRONT_API_URL", "https://override.example.com/api")
	t.Setenv("SHOPFRONT_TIMEOUT", "5")
	t.Setenv("SHOPFRONT_DEBUG", "true")

	body := `{"api_base_url":"https://file.example.com/api","request_timeout_seconds":60}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.RequestTimeoutSeconds)
	assert.True(t, cfg.Debug)
}

func TestMalformedConfigFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHOPFRONT_STATE_DIR", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{oops"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidTimeoutRejected(t *testing.T) {
	t.Setenv("SHOPFRONT_STATE_DIR", t.TempDir())
	t.Setenv("SHOPFRONT_TIMEOUT", "zero")

	_, err := Load()
	assert.Error(t, err)
}
