package cli

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SMS_TAGGER_SERVER", "")
	t.Setenv("SMS_TAGGER_FORMAT", "")
	t.Setenv("SMS_TAGGER_QUIET", "")
	t.Setenv("SMS_TAGGER_TIMEOUT", "")
	t.Setenv("NO_COLOR", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL = %q, want http://localhost:8080", cfg.ServerURL)
	}
	if cfg.Format != "table" {
		t.Errorf("Format = %q, want table", cfg.Format)
	}
	if cfg.Quiet || cfg.NoColor {
		t.Error("Quiet and NoColor must default to false")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadConfigFlagsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMS_TAGGER_SERVER", "http://env:8080")
	t.Setenv("SMS_TAGGER_FORMAT", "json")

	cfg, err := LoadConfig("http://flag:9090", "table", true)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ServerURL != "http://flag:9090" {
		t.Errorf("ServerURL = %q, flag must beat env", cfg.ServerURL)
	}
	if cfg.Format != "table" {
		t.Errorf("Format = %q, flag must beat env", cfg.Format)
	}
	if !cfg.Quiet {
		t.Error("Quiet flag ignored")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMS_TAGGER_SERVER", "http://env:8080")
	t.Setenv("SMS_TAGGER_QUIET", "true")
	t.Setenv("SMS_TAGGER_TIMEOUT", "10s")
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadConfig("", "", false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ServerURL != "http://env:8080" {
		t.Errorf("ServerURL = %q, want env value", cfg.ServerURL)
	}
	if !cfg.Quiet {
		t.Error("SMS_TAGGER_QUIET=true ignored")
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if !cfg.NoColor {
		t.Error("NO_COLOR ignored")
	}
}

func TestLoadConfigRejectsBadFormat(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfig("", "yaml", false); err == nil {
		t.Error("LoadConfig accepted format yaml")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is too long", 10, "this is..."},
		{"中通快递幸福小区菜鸟驿站", 8, "中通快递幸..."},
		{"abcdef", 3, "abc"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
		}
	}
}
