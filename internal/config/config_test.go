package config

import (
	"testing"
	"time"
)

// ========================================
// Load Tests
// ========================================

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	// Clear anything the host environment might set.
	for _, key := range []string{
		"PORT", "OPENAI_MODEL", "LLM_MAX_TOKENS", "MAX_UPLOAD_BYTES",
		"SCREENSHOT_TIMEOUT", "SCREENSHOT_SETTLE", "CORS_ORIGINS", "IDLE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q, want gpt-4o", cfg.OpenAIModel)
	}
	if cfg.LLMMaxTokens != 1500 {
		t.Errorf("LLMMaxTokens = %d, want 1500", cfg.LLMMaxTokens)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if cfg.ScreenshotTimeout != 30*time.Second {
		t.Errorf("ScreenshotTimeout = %v, want 30s", cfg.ScreenshotTimeout)
	}
	if cfg.ScreenshotSettle != 2*time.Second {
		t.Errorf("ScreenshotSettle = %v, want 2s", cfg.ScreenshotSettle)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.IdleTimeout != 0 {
		t.Errorf("IdleTimeout = %v, want 0", cfg.IdleTimeout)
	}
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("SCREENSHOT_TIMEOUT", "45s")
	t.Setenv("IDLE_TIMEOUT", "10m")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.ScreenshotTimeout != 45*time.Second {
		t.Errorf("ScreenshotTimeout = %v", cfg.ScreenshotTimeout)
	}
	if cfg.IdleTimeout != 10*time.Minute {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestLoad_RejectsNonPositiveUploadCap(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative MAX_UPLOAD_BYTES")
	}
}

func TestGetEnvHelpers_IgnoreMalformedValues(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	t.Setenv("SOME_DURATION", "eleven seconds")

	if got := getEnvInt("SOME_INT", 7); got != 7 {
		t.Errorf("getEnvInt = %d, want default 7", got)
	}
	if got := getEnvDuration("SOME_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getEnvDuration = %v, want default 1m", got)
	}
}
