package app

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer      string // Issuer claim for bearer tokens (default: soloday)
	TokenSecret string // Required in prod: HMAC secret for bearer tokens
	TokenTTL    time.Duration

	DatabaseFile string // Path to SQLite database file (default: ./soloday.db)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                 int
	ShutdownGracePeriod  time.Duration
	HousekeepingInterval time.Duration
	InterpretInterval    time.Duration // How often the interpreter worker scans for dreams
}

func LoadConfig() Config {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:               getEnvOrDefault("SOLODAY_ISSUER", "soloday"),
		TokenSecret:          os.Getenv("SOLODAY_TOKEN_SECRET"),
		TokenTTL:             getEnvDurationOrDefault("SOLODAY_TOKEN_TTL", 24*time.Hour),
		DatabaseFile:         getEnvOrDefault("SOLODAY_DATABASE_FILE", "soloday.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InterpretInterval:    getEnvDurationOrDefault("INTERPRET_INTERVAL", 2*time.Second),
	}

	if cfg.TokenSecret == "" {
		// Non-fatal: dev setups get an ephemeral secret, which means tokens
		// do not survive a restart.
		slog.Warn("SOLODAY_TOKEN_SECRET not set, using an ephemeral secret")
	}

	return cfg
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
