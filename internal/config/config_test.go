package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("ADMIN_SECRET", "admin-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "groq" {
		t.Fatalf("expected groq default, got %s", cfg.Provider)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.RoundSeconds != 1200 {
		t.Fatalf("expected 1200 second rounds, got %d", cfg.RoundSeconds)
	}
	if cfg.StrictInterrogation {
		t.Fatalf("strict interrogation should default off")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("ROUND_SECONDS", "600")
	t.Setenv("INTERROGATION_STRICT", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "gemini" || cfg.RoundSeconds != 600 || !cfg.StrictInterrogation {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_PROVIDER", "openai")

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "unsupported AI provider") {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_SECRET", "admin-secret")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}

	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("ADMIN_SECRET", "")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "ADMIN_SECRET") {
		t.Fatalf("expected ADMIN_SECRET error, got %v", err)
	}
}

func TestLoadConfigRejectsNonPositiveRoundSeconds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ROUND_SECONDS", "-5")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "ROUND_SECONDS") {
		t.Fatalf("expected ROUND_SECONDS error, got %v", err)
	}
}
