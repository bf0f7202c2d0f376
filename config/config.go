package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var (
	ENV          string
	PORT         string
	API_BASE_URL string
	JWT_SECRET   string
	TOKEN_PATH   string
	CORS_ORIGIN  string

	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
)

// DefaultBaseURL is what the transport uses before LoadEnv has run (or
// when API_BASE_URL is unset). Relative, so the console keeps working
// when it is served from the same host as the API.
const DefaultBaseURL = "/api"

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	ENV = getEnv("ENV", "development")
	PORT = getEnv("PORT", "8080")
	API_BASE_URL = getEnv("API_BASE_URL", DefaultBaseURL)
	JWT_SECRET = getEnv("JWT_SECRET", "dev-only-secret")
	TOKEN_PATH = getEnv("TOKEN_PATH", defaultTokenPath())
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "admin@example.com")
	ADMIN_PASSWORD = getEnv("ADMIN_PASSWORD", "admin12345")
}

// BaseURL returns the configured API base URL, falling back to the
// relative default when LoadEnv has not been called yet. Callers that
// saw the fallback self-correct on their next request.
func BaseURL() string {
	if API_BASE_URL == "" {
		return DefaultBaseURL
	}
	return API_BASE_URL
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".artconsole-token.json"
	}
	return filepath.Join(home, ".artconsole", "token.json")
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
