package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogFormat    string
	LogLevel     string
	APIKey       string

	// Render pipeline configuration
	RenderTimeout   time.Duration
	BrowserStrategy string // "desktop" or "packaged"
	BrowserBin      string

	// Storage configuration
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string

	// Mail configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string

	// Database configuration (optional; history endpoints disabled when empty)
	PostgresURL string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 120)) * time.Second,
		LogFormat:    getEnvString("LOG_FORMAT", "json"),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),
		APIKey:       os.Getenv("API_KEY"),

		// Render pipeline configuration
		RenderTimeout:   time.Duration(getEnvInt("RENDER_TIMEOUT", 60)) * time.Second,
		BrowserStrategy: getEnvString("BROWSER_STRATEGY", "desktop"),
		BrowserBin:      os.Getenv("BROWSER_BIN"),

		// Storage configuration
		StorageEndpoint:  getEnvString("STORAGE_ENDPOINT", "s3.amazonaws.com"),
		StorageRegion:    getEnvString("STORAGE_REGION", "ap-south-1"),
		StorageBucket:    getEnvString("STORAGE_BUCKET", "invoices"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),

		// Mail configuration
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailTo:       os.Getenv("MAIL_TO"),

		// Database configuration
		PostgresURL: os.Getenv("POSTGRES_DB_URL"),
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.StorageAccessKey == "" || config.StorageSecretKey == "" {
		log.Println("Warning: No storage credentials provided. PDF uploads will fail.")
	}

	if config.SMTPHost == "" {
		log.Println("Warning: No SMTP host provided. Invoice notifications will fail.")
	}

	if config.PostgresURL == "" {
		log.Println("Warning: No POSTGRES_DB_URL provided. Invoice history will be disabled.")
	}

	if config.BrowserStrategy != "desktop" && config.BrowserStrategy != "packaged" {
		log.Printf("Warning: Unknown BROWSER_STRATEGY %q, falling back to desktop.", config.BrowserStrategy)
		config.BrowserStrategy = "desktop"
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
