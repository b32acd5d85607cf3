// Package config loads runtime configuration from the environment,
// with an optional .env file for local overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSeedURL points at the static menu dataset used to initialize
// an empty local menu.
const DefaultSeedURL = "https://raw.githubusercontent.com/lmoreno/mesa-data/main/menu.json"

type Config struct {
	DataDir string
	Seed    SeedConfig
	Log     LogConfig
}

type SeedConfig struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

type LogConfig struct {
	Level string
	Path  string // defaults to <DataDir>/mesa.log
}

// Load reads configuration, falling back to defaults for anything
// unset. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := os.Getenv("MESA_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		dataDir = filepath.Join(home, ".mesa")
	}

	cfg := &Config{
		DataDir: dataDir,
		Seed: SeedConfig{
			URL:          getEnv("MESA_SEED_URL", DefaultSeedURL),
			Timeout:      getDuration("MESA_SEED_TIMEOUT", 10*time.Second),
			MaxRetries:   getInt("MESA_SEED_RETRIES", 0),
			InitialDelay: getDuration("MESA_SEED_RETRY_DELAY", time.Second),
			MaxDelay:     getDuration("MESA_SEED_RETRY_MAX_DELAY", 15*time.Second),
			Multiplier:   getFloat("MESA_SEED_RETRY_MULTIPLIER", 2.0),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Path:  getEnv("LOG_PATH", filepath.Join(dataDir, "mesa.log")),
		},
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
