package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) *Config {
	t.Helper()
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := load(t, map[string]string{})

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.DisableAuthDev {
		t.Fatalf("auth bypass must be off by default")
	}
	if cfg.Auth.ProtectAPI {
		t.Fatalf("api protection is opt-in")
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected 10s backend timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.Mongo.URI != "" || cfg.Redis.Addr != "" {
		t.Fatalf("optional stores must default to disabled")
	}
}

func TestCheck_DevelopmentFallbacks(t *testing.T) {
	cfg := load(t, map[string]string{
		"API_BASE_URL":     "http://backend",
		"DISABLE_AUTH_DEV": "true",
	})

	warnings, err := cfg.Check()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.SessionSecret != devSessionSecret {
		t.Fatalf("expected development secret")
	}
	if !cfg.Auth.DisableAuthDev {
		t.Fatalf("bypass must stay enabled outside production")
	}
	if len(warnings) == 0 {
		t.Fatalf("expected warnings for missing secret and credentials")
	}
}

func TestCheck_ProductionRules(t *testing.T) {
	cfg := load(t, map[string]string{
		"ENV":              "production",
		"API_BASE_URL":     "http://backend",
		"DISABLE_AUTH_DEV": "true",
	})

	if _, err := cfg.Check(); err == nil {
		t.Fatalf("expected error for missing SESSION_SECRET in production")
	}
	if cfg.Auth.DisableAuthDev {
		t.Fatalf("bypass must be forced off in production")
	}
}

func TestCheck_RequiresBackend(t *testing.T) {
	cfg := load(t, map[string]string{"SESSION_SECRET": "s"})
	if _, err := cfg.Check(); err == nil {
		t.Fatalf("expected error for missing API_BASE_URL")
	}
}
