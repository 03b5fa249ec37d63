package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
auth:
  jwt_secret: s3cret
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "memory" {
		t.Fatalf("backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Session.Latency != time.Second {
		t.Fatalf("session latency = %v, want 1s", cfg.Session.Latency)
	}
	if cfg.Generator.Delay != 3*time.Second {
		t.Fatalf("generator delay = %v, want 3s", cfg.Generator.Delay)
	}
	if cfg.QueryCache.StaleTime != 5*time.Minute {
		t.Fatalf("stale time = %v, want 5m", cfg.QueryCache.StaleTime)
	}
	if cfg.Auth.CookieName != "sd_client" {
		t.Fatalf("cookie = %q", cfg.Auth.CookieName)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "environment: test\n"},
		{"bad backend", "environment: test\nauth:\n  jwt_secret: x\nstorage:\n  backend: sqlite\n"},
		{"events without brokers", "environment: test\nauth:\n  jwt_secret: x\nevents:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("secret = %q", cfg.Auth.JWTSecret)
	}
	if !cfg.UsesRedis() || cfg.Storage.Redis.Host != "cache.internal" || cfg.Storage.Redis.Port != 6380 {
		t.Fatalf("redis override not applied: %+v", cfg.Storage)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if !cfg.Events.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("kafka override not applied: enabled=%v brokers=%v", cfg.Events.Enabled, cfg.Kafka.Brokers)
	}
}
