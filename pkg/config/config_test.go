package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected IsProd to be true for production env")
	}

	if got := cfg.HTTP.ReadTimeout; got != 15*time.Second {
		t.Fatalf("expected default read timeout 15s, got %v", got)
	}

	if cfg.Seed.Path != "testdata/seed.json" {
		t.Fatalf("unexpected seed path %q", cfg.Seed.Path)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvSeedPath, "testdata/seed.json")
}
