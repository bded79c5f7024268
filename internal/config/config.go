package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string
	ImageDir     string

	// GatewayAddr and ServerURL are used by the gateway binary only.
	GatewayAddr string
	ServerURL   string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :9090, matching the server tier port)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":9090")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Directory for stored item images (default: ./data/images)
	cfg.ImageDir = getEnv("IMAGE_DIR", "./data/images")

	cfg.GatewayAddr = getEnv("GATEWAY_ADDR", ":8080")
	cfg.ServerURL = getEnv("SERVER_URL", "http://localhost:9090")

	return cfg, nil
}

// LoadGateway loads the configuration subset the gateway binary needs.
// Unlike Load, it does not require a database DSN.
func LoadGateway() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.GatewayAddr = getEnv("GATEWAY_ADDR", ":8080")
	cfg.ServerURL = getEnv("SERVER_URL", "http://localhost:9090")

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
