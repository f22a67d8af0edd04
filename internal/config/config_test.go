package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RANGO_API_KEY", "  key-123 ")
	t.Setenv("POLL_INTERVAL", "30")
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RangoAPIKey != "key-123" {
		t.Fatalf("api key = %q", cfg.RangoAPIKey)
	}
	if cfg.RangoBaseURL != "https://api.rango.exchange" {
		t.Fatalf("base url = %q", cfg.RangoBaseURL)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("poll interval = %v", cfg.PollInterval)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("http timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("storage type = %q", cfg.StorageType)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("RANGO_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when rango_api_key is missing")
	}
}

func TestRedactedHidesAPIKey(t *testing.T) {
	cfg := Config{RangoAPIKey: "secret"}
	if got := cfg.Redacted().RangoAPIKey; got != "***" {
		t.Fatalf("redacted key = %q", got)
	}
	if cfg.RangoAPIKey != "secret" {
		t.Fatalf("Redacted mutated the receiver")
	}
}
