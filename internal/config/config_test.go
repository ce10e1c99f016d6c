package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.DefaultTimeCommitment != "1 hour" {
		t.Fatalf("expected default time commitment, got %q", cfg.DefaultTimeCommitment)
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %s", cfg.SessionTTL())
	}
	if cfg.RateWindow() != time.Minute || cfg.MessageRateLimit != 30 {
		t.Fatalf("unexpected rate limit defaults: %d per %s", cfg.MessageRateLimit, cfg.RateWindow())
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://advisor@localhost:5432/advisor")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("MESSAGE_RATE_WINDOW_SECONDS", "10")
	t.Setenv("CATALOG_PATH", "/etc/advisor/catalog.yaml")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.RedisDB != 2 || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.CatalogPath != "/etc/advisor/catalog.yaml" {
		t.Fatalf("unexpected catalog path %q", cfg.CatalogPath)
	}
	if cfg.SessionTTL() != 30*time.Minute || cfg.RateWindow() != 10*time.Second {
		t.Fatalf("unexpected durations: ttl=%s window=%s", cfg.SessionTTL(), cfg.RateWindow())
	}
}

func TestLoadConfig_InvalidNumber(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for invalid REDIS_DB")
	}
}

func TestDurations_NonPositive(t *testing.T) {
	cfg := &Config{SessionTTLMinutes: 0, MessageRateWindowSecs: -1}
	if cfg.SessionTTL() != time.Minute || cfg.RateWindow() != time.Minute {
		t.Fatalf("expected one minute floors")
	}
}
