package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port    string
		GinMode string
	}

	Upload struct {
		// MaxFileSize is the per-file ceiling for multipart uploads.
		MaxFileSize int64
		// MaxBodySize is the ceiling for non-file (JSON/urlencoded) bodies.
		MaxBodySize int64
	}

	SMTP struct {
		Host     string
		Port     string
		Username string
		Password string
		From     string
	}

	// NotifyTo is the operator address that receives submission summaries.
	NotifyTo string

	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "recupera")
	config.DB.Password = getEnv("DB_PASSWORD", "recupera_password")
	config.DB.Name = getEnv("DB_NAME", "recupera_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "3000")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Upload.MaxFileSize = getEnvAsInt64("MAX_FILE_SIZE", 20<<20)
	config.Upload.MaxBodySize = getEnvAsInt64("MAX_BODY_SIZE", 2<<20)

	config.SMTP.Host = getEnv("SMTP_HOST", "")
	config.SMTP.Port = getEnv("SMTP_PORT", "587")
	config.SMTP.Username = getEnv("SMTP_USER", "")
	config.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	config.SMTP.From = getEnv("SMTP_FROM", "no-reply@recuperacasa.pt")

	config.NotifyTo = getEnv("NOTIFY_TO", "pedidos@recuperacasa.pt")

	config.LogLevel = getEnv("LOG_LEVEL", "info")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// MailConfigured reports whether an outbound SMTP relay has been set up.
func (c *Config) MailConfigured() bool {
	return c.SMTP.Host != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
