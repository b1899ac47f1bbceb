package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port     string
	BaseURL  string
	Database DatabaseConfig
	Aleo     AleoConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Quiet    bool
}

// AleoConfig holds the explorer read API configuration (used by operator
// tooling only; the record service itself never talks to the network)
type AleoConfig struct {
	APIURL  string
	Network string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "4000"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "privyrecord"),
			Quiet:    getEnv("DB_QUIET", "false") == "true",
		},
		Aleo: AleoConfig{
			APIURL:  getEnv("ALEO_API_URL", "https://api.explorer.provable.com/v1"),
			Network: getEnv("ALEO_NETWORK", "testnet"),
		},
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
