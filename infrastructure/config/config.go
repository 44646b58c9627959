package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string

	JWTSecret      string
	AccessTokenTTL time.Duration

	ServerHost  string
	ServerPort  string
	Environment string

	LogLevel  string
	LogFormat string

	RateLimitEnabled       bool
	RateLimitMaxAttempts   int
	RateLimitWindow        time.Duration
	RateLimitBlockDuration time.Duration

	AlertEnabled bool
	AlertChannel string

	BaseEventCapacity int
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidDuration    = errors.New("invalid duration format")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ServerHost:  getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		Environment: getEnvOrDefault("ENV", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "json"),

		RateLimitEnabled:     getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitMaxAttempts: getEnvOrDefaultInt("RATE_LIMIT_MAX_ATTEMPTS", 5),

		AlertEnabled: getEnvOrDefaultBool("ALERT_ENABLED", true),
		AlertChannel: getEnvOrDefault("ALERT_CHANNEL", "clubly:alerts:critical"),

		BaseEventCapacity: getEnvOrDefaultInt("BASE_EVENT_CAPACITY", 100),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	accessTokenTTL, err := parseSeconds(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "900"))
	if err != nil {
		return nil, ErrInvalidDuration
	}
	cfg.AccessTokenTTL = accessTokenTTL

	window, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_WINDOW", "900"))
	if err != nil {
		return nil, ErrInvalidDuration
	}
	cfg.RateLimitWindow = window

	blockDuration, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_BLOCK_DURATION", "1800"))
	if err != nil {
		return nil, ErrInvalidDuration
	}
	cfg.RateLimitBlockDuration = blockDuration

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 0, ErrInvalidDuration
	}
	return time.Duration(seconds) * time.Second, nil
}
