package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	BaseURL         string
	CredentialsFile string
	LogLevel        string
	LogFormat       string
	Environment     string // development, staging, production

	// Dev server settings
	Port            string
	OpenAPISpecPath string
	SeedData        bool
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		BaseURL:         getEnv("UNITIP_BASE_URL", "http://localhost:8080/api/v1"),
		CredentialsFile: getEnv("UNITIP_CREDENTIALS_FILE", defaultCredentialsFile()),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		Port:            getEnv("PORT", "8080"),
		OpenAPISpecPath: getEnv("OPENAPI_SPEC_PATH", "artifacts/openapi.yaml"),
		SeedData:        getEnv("SEED_DATA", "true") == "true",
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	return cfg
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("UNITIP_BASE_URL must not be empty")
	}

	if c.IsProduction() && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("UNITIP_BASE_URL must use HTTPS in production (got %s)", c.BaseURL)
	}

	if c.CredentialsFile == "" {
		return fmt.Errorf("UNITIP_CREDENTIALS_FILE must not be empty")
	}

	return nil
}

// IsProduction returns true if running against the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unitip-session.json"
	}
	return filepath.Join(home, ".unitip", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
