// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all server configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DBPath is the path to the SQLite database file.
	DBPath string

	// JWTSecret signs session tokens. Required outside of dev.
	JWTSecret string

	// TokenDuration is how long issued tokens remain valid.
	TokenDuration time.Duration

	// ReminderSweepSpec is the cron expression for the overdue-reminder sweep.
	ReminderSweepSpec string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "./data/pennywise.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		ReminderSweepSpec: getEnv("REMINDER_SWEEP_SPEC", "@every 1h"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	duration := getEnv("TOKEN_DURATION", "24h")
	d, err := time.ParseDuration(duration)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION %q: %w", duration, err)
	}
	cfg.TokenDuration = d

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
