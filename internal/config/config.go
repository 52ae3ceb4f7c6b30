package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort    string
	DatabaseURL string
	DBPoolSize  int
}

// Load reads configuration from the environment. DATABASE_URL is required;
// everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPoolSize:  getIntEnv("DB_POOL_SIZE", 10),
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
