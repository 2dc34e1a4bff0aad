package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort          int
	DatabasePath        string
	JWTSecret           string
	TokenTTLHours       int
	SeedDemoData        bool
	OverdueSweepMinutes int
	OverdueSweepCron    string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:          port,
		DatabasePath:        getEnv("DATABASE_PATH", "./taskmanager.db"),
		JWTSecret:           getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTLHours:       getEnvAsInt("TOKEN_TTL_HOURS", 24),
		SeedDemoData:        getEnv("SEED_DEMO_DATA", "true") == "true",
		OverdueSweepMinutes: getEnvAsInt("OVERDUE_SWEEP_MINUTES", 5),
		OverdueSweepCron:    getEnv("OVERDUE_SWEEP_CRON", ""),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
