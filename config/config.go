package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	FrontendURL string

	SendgridApiKey string
	EmailSender    string

	SSLCommerzStoreID       string
	SSLCommerzStorePassword string
	SSLCommerzIsLive        bool

	BkashAppKey    string
	BkashAppSecret string
	BkashUsername  string
	BkashPassword  string
	BkashIsLive    bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "5000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@trainhub.local"),

		SSLCommerzStoreID:       getEnv("SSLCOMMERZ_STORE_ID", "demo"),
		SSLCommerzStorePassword: getEnv("SSLCOMMERZ_STORE_PASSWORD", "demo"),
		SSLCommerzIsLive:        getEnvBool("SSLCOMMERZ_IS_LIVE", false),

		BkashAppKey:    getEnv("BKASH_APP_KEY", "demo_app_key"),
		BkashAppSecret: getEnv("BKASH_APP_SECRET", "demo_app_secret"),
		BkashUsername:  getEnv("BKASH_USERNAME", "demo_username"),
		BkashPassword:  getEnv("BKASH_PASSWORD", "demo_password"),
		BkashIsLive:    getEnvBool("BKASH_IS_LIVE", false),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridApiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Outgoing emails will be skipped.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves an environment variable as a bool or returns the default bool value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
