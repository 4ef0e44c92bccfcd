// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Upstream UpstreamConfig
	Audit    AuditConfig
}

type ServerConfig struct {
	AppEnv string
	Port   string
}

type LoggerConfig struct {
	Level       string
	Development bool
}

type UpstreamConfig struct {
	URL             string
	MaxRetries      int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	JitterFraction  float64
	RequestTimeout  time.Duration
	RefreshInterval time.Duration // 0 disables periodic refresh
}

type AuditConfig struct {
	MaxEntries int
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "development"),
			Port:   getEnv("APP_PORT", "8080"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnv("APP_ENV", "development") == "development",
		},
		Upstream: UpstreamConfig{
			URL:             getEnv("UPSTREAM_URL", "https://dev-0tf0hinghgjl39z.api.raw-labs.com/inventory"),
			MaxRetries:      getEnvInt("UPSTREAM_MAX_RETRIES", 3),
			InitialDelay:    getEnvDuration("UPSTREAM_INITIAL_DELAY", time.Second),
			MaxDelay:        getEnvDuration("UPSTREAM_MAX_DELAY", 30*time.Second),
			JitterFraction:  getEnvFloat("UPSTREAM_JITTER_FRACTION", 0),
			RequestTimeout:  getEnvDuration("UPSTREAM_REQUEST_TIMEOUT", 10*time.Second),
			RefreshInterval: getEnvDuration("UPSTREAM_REFRESH_INTERVAL", 0),
		},
		Audit: AuditConfig{
			MaxEntries: getEnvInt("AUDIT_MAX_ENTRIES", 1000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
