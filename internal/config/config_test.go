package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Shield the test from whatever the developer has exported; getEnv
	// treats empty as unset.
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "CLINIC_API_BASE_URL", "CLINIC_HTTP_TIMEOUT",
		"CLINIC_SESSION_FILE", "CLINIC_HOLD_TTL", "CLINIC_METRICS_ADDR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8081/api" {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}
	if cfg.HoldTTL != 5*time.Minute {
		t.Fatalf("unexpected hold TTL: %s", cfg.HoldTTL)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.HTTPTimeout)
	}
	if cfg.SessionFile == "" {
		t.Fatal("session file default should not be empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CLINIC_API_BASE_URL", "https://clinic.example.com/api")
	t.Setenv("CLINIC_HOLD_TTL", "90s")
	t.Setenv("CLINIC_HTTP_TIMEOUT", "bogus")

	cfg := Load()
	if cfg.APIBaseURL != "https://clinic.example.com/api" {
		t.Fatalf("override not applied: %s", cfg.APIBaseURL)
	}
	if cfg.HoldTTL != 90*time.Second {
		t.Fatalf("duration override not applied: %s", cfg.HoldTTL)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Fatalf("invalid duration should fall back to default, got %s", cfg.HTTPTimeout)
	}
}
