package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	Environment       string
	HTTPAddr          string
	ClientOrigins     []string
	DBDSN             string
	DBMaxConns        int
	DBAutoMigrate     bool
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Application environment (default: dev)
	cfg.Environment = getEnv("APP_ENV", "dev")
	cfg.IsProduction = cfg.Environment == PROD_STRING

	// HTTP listen address (default: :5000, same port the web client expects)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":5000")

	// Allowed CORS origins for the web client
	cfg.ClientOrigins = splitList(getEnv("CLIENT_ORIGINS", "http://localhost:3000,http://localhost:3001"))

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	cfg.DBAutoMigrate, err = getEnvAsBool("DB_AUTO_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "168h").
	cfg.JWTAccessTokenTTL, err = time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	if !cfg.IsProduction && os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = "console"
	}

	// Redis is optional; without it the rate limiter is per process.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.RateLimitRequests, err = getEnvAsInt("RATE_LIMIT_REQUESTS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	if cfg.RateLimitRequests <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: must be greater than 0, got %d", cfg.RateLimitRequests)
	}
	cfg.RateLimitWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: must be greater than 0, got %s", cfg.RateLimitWindow)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}

	return val, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
