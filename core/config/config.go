package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration, sourced from environment
// variables (optionally loaded from a .env file by main).
type Config struct {
	Env        string
	Version    string
	ServerPort string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // sqlite file path

	// Auth
	JWTSecret string

	// Storage
	StorageProvider  string
	StoragePath      string
	StorageBaseURL   string
	StorageAPIKey    string
	StorageAPISecret string
	StorageEndpoint  string
	StorageBucket    string
	StorageRegion    string

	// Email
	EmailProvider     string
	EmailFromAddress  string
	SendGridAPIKey    string
	PostmarkServerKey string
	PostmarkAccountKey string
	DigestRecipient   string

	// Search
	HistoryRetentionDays int

	// Feature toggles
	WebSocketEnabled bool
	MetricsEnabled   bool
	CORSEnabled      bool
	CORSOrigins      []string
}

// NewConfig builds a Config from the environment with sensible defaults
func NewConfig() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		Version:    getEnv("APP_VERSION", "1.0.0"),
		ServerPort: normalizePort(getEnv("SERVER_PORT", ":8100")),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "backoffice"),
		DBPath:     getEnv("DB_PATH", "storage/backoffice.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "local"),
		StoragePath:      getEnv("STORAGE_PATH", "storage/uploads"),
		StorageBaseURL:   getEnv("STORAGE_BASE_URL", "/storage"),
		StorageAPIKey:    getEnv("STORAGE_API_KEY", ""),
		StorageAPISecret: getEnv("STORAGE_API_SECRET", ""),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),

		EmailProvider:      getEnv("EMAIL_PROVIDER", "log"),
		EmailFromAddress:   getEnv("EMAIL_FROM_ADDRESS", "no-reply@localhost"),
		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		PostmarkServerKey:  getEnv("POSTMARK_SERVER_KEY", ""),
		PostmarkAccountKey: getEnv("POSTMARK_ACCOUNT_KEY", ""),
		DigestRecipient:    getEnv("SEARCH_DIGEST_RECIPIENT", ""),

		HistoryRetentionDays: getEnvInt("SEARCH_HISTORY_RETENTION_DAYS", 90),

		WebSocketEnabled: getEnvBool("WEBSOCKET_ENABLED", true),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		CORSEnabled:      getEnvBool("CORS_ENABLED", true),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizePort(port string) string {
	if port != "" && !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
