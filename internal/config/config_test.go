package config

import (
	"log/slog"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "rewise.db" {
		t.Fatalf("expected default database path, got %s", cfg.DatabasePath)
	}
	if cfg.CatalogPath != "" {
		t.Fatalf("expected empty catalog path, got %s", cfg.CatalogPath)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", cfg.Location)
	}
	if !cfg.RolloverEnabled {
		t.Fatal("expected rollover enabled by default")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.RateLimitPerSec != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit %v/%v", cfg.RateLimitPerSec, cfg.RateLimitBurst)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":             " 9090 ",
		"DATABASE_PATH":    "/tmp/study.db",
		"CATALOG_PATH":     "deck.xlsx",
		"TZ_NAME":          "Europe/Berlin",
		"ROLLOVER_ENABLED": "false",
		"LOG_LEVEL":        "debug",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("expected trimmed port 9090, got %q", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/study.db" || cfg.CatalogPath != "deck.xlsx" {
		t.Fatalf("unexpected paths %q %q", cfg.DatabasePath, cfg.CatalogPath)
	}
	if cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin, got %s", cfg.Location)
	}
	if cfg.RolloverEnabled {
		t.Fatal("expected rollover disabled")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad timezone", env: map[string]string{"TZ_NAME": "Mars/Olympus"}},
		{name: "bad rollover flag", env: map[string]string{"ROLLOVER_ENABLED": "sometimes"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "negative rate", env: map[string]string{"RATE_LIMIT_PER_SEC": "-1"}},
		{name: "zero burst", env: map[string]string{"RATE_LIMIT_BURST": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envMap(tt.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
