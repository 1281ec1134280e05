// Package config loads process-wide settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "3000"
	defaultJWTExpiration  = 7 * 24 * time.Hour
	defaultBcryptCost     = 10
	defaultConnectTimeout = 60 * time.Second
	defaultTaskCacheTTL   = 5 * time.Minute
)

// Config holds every setting the server needs. It is built once at startup
// and handed to constructors; nothing reads the environment after Load returns.
type Config struct {
	// Server
	Port    string
	GinMode string

	// Auth
	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int

	// Database
	DatabaseURL    string
	ConnectTimeout time.Duration
	RunMigrations  bool

	// Redis (optional task list cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TaskCacheTTL  time.Duration

	CORSAllowedOrigins []string
	LogLevel           string
}

// Load reads .env (if present) and the process environment, then validates
// the result. A non-nil error means the process must not start.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	var errs []error

	cfg := &Config{
		Port:    getEnv("PORT", defaultPort),
		GinMode: getEnv("GIN_MODE", "release"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.JWTExpiration, err = getEnvAsDuration("JWT_EXPIRATION", defaultJWTExpiration); err != nil {
		errs = append(errs, err)
	}
	if cfg.ConnectTimeout, err = getEnvAsDuration("DB_CONNECT_TIMEOUT", defaultConnectTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.TaskCacheTTL, err = getEnvAsDuration("TASK_CACHE_TTL", defaultTaskCacheTTL); err != nil {
		errs = append(errs, err)
	}
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", defaultBcryptCost); err != nil {
		errs = append(errs, err)
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.RunMigrations, err = getEnvAsBool("RUN_MIGRATIONS", true); err != nil {
		errs = append(errs, err)
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

// splitList turns "a, b,,c" into ["a" "b" "c"].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
