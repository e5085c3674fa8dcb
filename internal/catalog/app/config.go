package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer      string // Optional: issuer claim for session tokens (default: openshelf-catalog)
	TokenSecret string // Optional: HS256 signing secret; generated per-process when empty

	TokenTTL         time.Duration // Optional: session token lifetime (default: 1h)
	RevocationWindow time.Duration // Optional: revocation record lifetime (default: token TTL)

	DatabaseFile string // Optional: path to SQLite database file (default: ./catalog.db)
	PepperFile   string // Optional: path to pepper file for password hashing (default: ./pepper)

	AdminUsername string // Optional: seeded admin username (default: admin)
	AdminPassword string // Optional: seeded admin password; generated and logged when empty

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Revocation sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:           getEnvOrDefault("CATALOG_ISSUER", "openshelf-catalog"),
		TokenSecret:      os.Getenv("CATALOG_TOKEN_SECRET"),
		TokenTTL:         getEnvDurationOrDefault("CATALOG_TOKEN_TTL", time.Hour),
		RevocationWindow: getEnvDurationOrDefault("CATALOG_REVOCATION_WINDOW", time.Hour),
		DatabaseFile:     getEnvOrDefault("CATALOG_DATABASE_FILE", "catalog.db"),
		PepperFile:       getEnvOrDefault("CATALOG_PEPPER_FILE", "pepper"),
		AdminUsername:    getEnvOrDefault("CATALOG_ADMIN_USERNAME", "admin"),
		AdminPassword:    os.Getenv("CATALOG_ADMIN_PASSWORD"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
