package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return cfgPath
}

func TestInit_WithValidConfig(t *testing.T) {
	cfgPath := writeConfig(t, `
version: 1
defaults:
  format: json
  strategy: enhanced
  provider: openai

enhancer:
  url: https://enhancer.example.com/api/generate
  timeout_seconds: 10

evaluator:
  url: http://localhost:9000
`)

	if err := Init(cfgPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}

	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format 'json', got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.Strategy != "enhanced" {
		t.Errorf("expected strategy 'enhanced', got %q", cfg.Defaults.Strategy)
	}
	if cfg.Defaults.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", cfg.Defaults.Provider)
	}

	if cfg.Enhancer.URL != "https://enhancer.example.com/api/generate" {
		t.Errorf("unexpected enhancer url %q", cfg.Enhancer.URL)
	}
	if cfg.Enhancer.TimeoutSeconds != 10 {
		t.Errorf("expected enhancer timeout 10, got %d", cfg.Enhancer.TimeoutSeconds)
	}

	if cfg.Evaluator.URL != "http://localhost:9000" {
		t.Errorf("unexpected evaluator url %q", cfg.Evaluator.URL)
	}
}

func TestInit_Defaults(t *testing.T) {
	cfgPath := writeConfig(t, `version: 1`)

	if err := Init(cfgPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg := Get()
	if cfg.Defaults.Format != "feature" {
		t.Errorf("expected default format 'feature', got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.Strategy != "local" {
		t.Errorf("expected default strategy 'local', got %q", cfg.Defaults.Strategy)
	}
	if cfg.Defaults.Provider != "groq" {
		t.Errorf("expected default provider 'groq', got %q", cfg.Defaults.Provider)
	}
	if cfg.Enhancer.TimeoutSeconds != 30 {
		t.Errorf("expected default enhancer timeout 30, got %d", cfg.Enhancer.TimeoutSeconds)
	}
	if cfg.Evaluator.URL != "http://localhost:8000" {
		t.Errorf("expected default evaluator url, got %q", cfg.Evaluator.URL)
	}
	if cfg.Evaluator.TimeoutSeconds != 60 {
		t.Errorf("expected default evaluator timeout 60, got %d", cfg.Evaluator.TimeoutSeconds)
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nonexistent.yaml")

	if err := Init(cfgPath); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestInit_MalformedConfig(t *testing.T) {
	cfgPath := writeConfig(t, "defaults: [not: a: map")

	if err := Init(cfgPath); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestConfigFilePath(t *testing.T) {
	cfgPath := writeConfig(t, `version: 1`)

	if err := Init(cfgPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if got := ConfigFilePath(); got != cfgPath {
		t.Errorf("ConfigFilePath() = %q, want %q", got, cfgPath)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath failed: %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, want a config.yaml path", path)
	}
}
