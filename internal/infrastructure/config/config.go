// Package config loads server configuration from the environment, with .env
// support for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server binary needs.
type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	DatabaseURL string
	RedisAddr   string
	RedisDB     int

	// StoreID scopes every lookup this instance performs.
	StoreID string

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		StoreID:         getEnv("STORE_ID", ""),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// IsDevelopment reports whether the instance runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
