package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB     DatabaseConfig
	Redis  RedisConfig
	Worker WorkerConfig
	Admin  AdminConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	RollupInterval  time.Duration
	CleanupInterval time.Duration
	ViewRetention   time.Duration
}

// AdminConfig contains bootstrap parameters for the first admin account.
type AdminConfig struct {
	BootstrapUsername string
	BootstrapEmail    string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Admin bootstrap
	cfg.Admin = AdminConfig{
		BootstrapUsername: getEnv("ADMIN_BOOTSTRAP_USERNAME", "admin"),
		BootstrapEmail:    getEnv("ADMIN_BOOTSTRAP_EMAIL", "admin@techtornix.com"),
	}

	// Workers (durations)
	var err error
	if cfg.Worker.RollupInterval, err = parseDurationEnv("ANALYTICS_ROLLUP_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_ROLLUP_INTERVAL: %w", err)
	}
	if cfg.Worker.CleanupInterval, err = parseDurationEnv("ANALYTICS_CLEANUP_INTERVAL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CLEANUP_INTERVAL: %w", err)
	}
	if cfg.Worker.ViewRetention, err = parseDurationEnv("ANALYTICS_VIEW_RETENTION", "2160h"); err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_VIEW_RETENTION: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return d, nil
}
