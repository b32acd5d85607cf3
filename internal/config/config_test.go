package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MESA_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSeedURL, cfg.Seed.URL)
	assert.Equal(t, 0, cfg.Seed.MaxRetries, "one attempt by default")
	assert.Equal(t, 10*time.Second, cfg.Seed.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.Path)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MESA_DATA_DIR", dir)
	t.Setenv("MESA_SEED_URL", "https://example.com/menu.json")
	t.Setenv("MESA_SEED_RETRIES", "3")
	t.Setenv("MESA_SEED_RETRY_DELAY", "500ms")
	t.Setenv("MESA_SEED_RETRY_MULTIPLIER", "1.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "https://example.com/menu.json", cfg.Seed.URL)
	assert.Equal(t, 3, cfg.Seed.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Seed.InitialDelay)
	assert.Equal(t, 1.5, cfg.Seed.Multiplier)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("MESA_DATA_DIR", t.TempDir())
	t.Setenv("MESA_SEED_RETRIES", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Seed.MaxRetries)
}
