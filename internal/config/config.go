package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// AppConfig collects everything needed to run the server.
type AppConfig struct {
	Port            string
	DatabasePath    string
	CatalogPath     string // Optional deck file imported at startup
	Location        *time.Location
	RolloverEnabled bool
	LogLevel        slog.Level
	RateLimitPerSec float64
	RateLimitBurst  float64
}

// Load reads an optional .env file and then the environment, filling in
// defaults for anything unset.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (AppConfig, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := AppConfig{
		Port:         get("PORT", "8080"),
		DatabasePath: get("DATABASE_PATH", "rewise.db"),
		CatalogPath:  get("CATALOG_PATH", ""),
	}

	loc, err := time.LoadLocation(get("TZ_NAME", "UTC"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid TZ_NAME: %w", err)
	}
	cfg.Location = loc

	cfg.RolloverEnabled, err = strconv.ParseBool(get("ROLLOVER_ENABLED", "true"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ROLLOVER_ENABLED: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return AppConfig{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.RateLimitPerSec, err = strconv.ParseFloat(get("RATE_LIMIT_PER_SEC", "5"), 64)
	if err != nil || cfg.RateLimitPerSec < 0 {
		return AppConfig{}, fmt.Errorf("invalid RATE_LIMIT_PER_SEC %q", getenv("RATE_LIMIT_PER_SEC"))
	}
	cfg.RateLimitBurst, err = strconv.ParseFloat(get("RATE_LIMIT_BURST", "10"), 64)
	if err != nil || cfg.RateLimitBurst < 1 {
		return AppConfig{}, fmt.Errorf("invalid RATE_LIMIT_BURST %q", getenv("RATE_LIMIT_BURST"))
	}

	return cfg, nil
}
