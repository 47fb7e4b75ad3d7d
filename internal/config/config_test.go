package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ExitsFile != "exits.txt" || cfg.OutcomeFile != "Outcome.txt" {
		t.Errorf("unexpected file defaults %+v", cfg)
	}
	if cfg.Seed != 0 || cfg.Plain {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.RequireGemini(); !errors.Is(err, ErrMissingGeminiKey) {
		t.Errorf("expected missing key error, got %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ESCAPE_SEED", "42")
	t.Setenv("ESCAPE_PLAIN", "true")
	t.Setenv("ESCAPE_EXITS_FILE", "tables/exits.yaml")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Seed != 42 || !cfg.Plain || cfg.ExitsFile != "tables/exits.yaml" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ESCAPE_SEED", "not-a-number")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
