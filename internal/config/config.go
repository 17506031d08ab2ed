package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// DataPath locates the placement CSV. The server binary also accepts
	// a positional path argument that overrides this value.
	DataPath string
	// RedisURL enables the Redis-backed memoization store when set;
	// empty falls back to the in-process store.
	RedisURL string
	CacheTTL time.Duration
	// ExportRatePerMinute caps PDF export requests per client IP.
	ExportRatePerMinute int
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible
// defaults. It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "pretty"),
		DataPath:            getEnv("DATA_PATH", "./data/placement_data.csv"),
		RedisURL:            getEnv("REDIS_URL", ""),
		CacheTTL:            time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		ExportRatePerMinute: getEnvInt("EXPORT_RATE_PER_MINUTE", 10),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed
// slice. Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
