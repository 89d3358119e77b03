package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds application configuration
type Config struct {
	Env         string
	LogLevel    string
	APIBaseURL  string
	HTTPTimeout time.Duration
	SessionFile string
	HoldTTL     time.Duration
	MetricsAddr string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		APIBaseURL:  getEnv("CLINIC_API_BASE_URL", "http://localhost:8081/api"),
		HTTPTimeout: getEnvAsDuration("CLINIC_HTTP_TIMEOUT", 20*time.Second),
		SessionFile: getEnv("CLINIC_SESSION_FILE", defaultSessionFile()),
		HoldTTL:     getEnvAsDuration("CLINIC_HOLD_TTL", 5*time.Minute),
		MetricsAddr: getEnv("CLINIC_METRICS_ADDR", ""),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "clinicdesk-session.json")
	}
	return filepath.Join(home, ".clinicdesk", "session.json")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
