// ABOUTME: Tests for the configuration loader
// ABOUTME: Verifies defaults, env overrides, and validation

package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EVMARKET_API_URL", "")
	t.Setenv("EVMARKET_REQUEST_TIMEOUT", "")
	t.Setenv("EVMARKET_CONFIG_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:5124" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.RequestTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EVMARKET_API_URL", "api.evmarket.vn")
	t.Setenv("EVMARKET_REQUEST_TIMEOUT", "10")
	t.Setenv("EVMARKET_CONFIG_DIR", "/tmp/evmarket-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://api.evmarket.vn" {
		t.Errorf("expected scheme to be added, got %s", cfg.APIURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.ConfigDir != "/tmp/evmarket-test" {
		t.Errorf("expected config dir override, got %s", cfg.ConfigDir)
	}
}

func TestLoad_TimeoutValidation(t *testing.T) {
	t.Setenv("EVMARKET_API_URL", "")
	t.Setenv("EVMARKET_REQUEST_TIMEOUT", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for zero timeout")
	}
	if !strings.Contains(err.Error(), "EVMARKET_REQUEST_TIMEOUT") {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"localhost:5124", "http://localhost:5124"},
		{"https://api.evmarket.vn", "https://api.evmarket.vn"},
		{"http://api.evmarket.vn", "http://api.evmarket.vn"},
	}
	for _, tt := range tests {
		if got := ensureScheme(tt.in); got != tt.want {
			t.Errorf("ensureScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != "/tmp/xdg/evmarket" {
		t.Errorf("expected XDG dir, got %s", got)
	}
}
