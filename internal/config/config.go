package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Upstream providers
	OpenDotaBaseURL string
	StratzURL       string
	StratzToken     string
	ProviderTimeout time.Duration

	// Storage
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Benchmark cache
	BenchmarkCacheTTL time.Duration

	// Coefficient document (optional; compiled-in defaults when empty)
	CoefficientsPath string

	// Tracker worker
	TrackerEnabled  bool
	TrackerInterval time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		OpenDotaBaseURL: getEnv("OPENDOTA_BASE_URL", "https://api.opendota.com/api"),
		StratzURL:       getEnv("STRATZ_URL", "https://api.stratz.com/graphql"),
		StratzToken:     getEnv("STRATZ_TOKEN", ""),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),

		BenchmarkCacheTTL: getEnvDuration("BENCHMARK_CACHE_TTL", 6*time.Hour),
		CoefficientsPath:  getEnv("COEFFICIENTS_PATH", ""),

		TrackerEnabled:  getEnvBool("TRACKER_ENABLED", true),
		TrackerInterval: getEnvDuration("TRACKER_INTERVAL", 5*time.Minute),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
