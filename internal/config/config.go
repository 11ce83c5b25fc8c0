// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    int
	BaseURL string

	// OpenAI
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string        // Optional override for OpenAI-compatible gateways
	LLMTimeout    time.Duration // Per-call timeout for model requests
	LLMMaxTokens  int

	// Upload limits
	MaxUploadBytes int64 // Max size of a single uploaded image

	// Screenshot capture
	ScreenshotTimeout time.Duration // Navigation timeout per capture attempt
	ScreenshotSettle  time.Duration // Delay after load before taking the screenshot
	ChromePath        string        // Optional path to a Chrome/Chromium binary

	// CORS
	CORSOrigins []string

	// Idle shutdown settings (for scale-to-zero deployments)
	IdleTimeout time.Duration // Time before shutting down when idle (0 = disabled)
}

// DefaultMaxUploadBytes is the upload cap applied when MAX_UPLOAD_BYTES is unset.
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:    getEnvInt("PORT", 8000),
		BaseURL: getEnv("BASE_URL", "http://localhost:8000"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		LLMTimeout:    getEnvDuration("LLM_TIMEOUT", 120*time.Second),
		LLMMaxTokens:  getEnvInt("LLM_MAX_TOKENS", 1500),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),

		ScreenshotTimeout: getEnvDuration("SCREENSHOT_TIMEOUT", 30*time.Second),
		ScreenshotSettle:  getEnvDuration("SCREENSHOT_SETTLE", 2*time.Second),
		ChromePath:        getEnv("CHROME_PATH", ""),

		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),

		IdleTimeout: getEnvDuration("IDLE_TIMEOUT", 0), // 0 = disabled
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
