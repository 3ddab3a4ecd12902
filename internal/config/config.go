// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Security    SecurityConfig
	AI          AIConfig
	Email       EmailConfig
	App         AppConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	BaseURL      string
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // in hours
	RememberMeTTL   int // in hours, used when "remember me" is requested
	RefreshTokenTTL int // in hours
}

type SecurityConfig struct {
	CSRFKey        string
	AuthRateLimit  int // login/signup attempts per window
	AuthRateWindow int // window in minutes
}

type AIConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   int // in seconds
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type AppConfig struct {
	// LowStockThreshold is the single source of truth for "low stock": a
	// product is low when 0 < quantity <= threshold. Both the product filter
	// and the dashboard use this value.
	LowStockThreshold int
	ActivityFeedSize  int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			BaseURL:      getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			CORSOrigins:  getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "inventra"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL:  getEnvAsInt("JWT_ACCESS_TTL", 1),
			RememberMeTTL:   getEnvAsInt("JWT_REMEMBER_TTL", 24),
			RefreshTokenTTL: getEnvAsInt("JWT_REFRESH_TTL", 168),
		},
		Security: SecurityConfig{
			CSRFKey:        getEnv("CSRF_KEY", "32-byte-long-auth-key-change-me!"),
			AuthRateLimit:  getEnvAsInt("AUTH_RATE_LIMIT", 5),
			AuthRateWindow: getEnvAsInt("AUTH_RATE_WINDOW", 15),
		},
		AI: AIConfig{
			APIKey:    getEnv("AI_API_KEY", ""),
			BaseURL:   getEnv("AI_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:     getEnv("AI_MODEL", "llama-3.1-8b-instant"),
			MaxTokens: getEnvAsInt("AI_MAX_TOKENS", 200),
			Timeout:   getEnvAsInt("AI_TIMEOUT", 20),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@inventra.local"),
			FromName:     getEnv("FROM_NAME", "Inventra"),
		},
		App: AppConfig{
			LowStockThreshold: getEnvAsInt("APP_LOW_STOCK_THRESHOLD", 10),
			ActivityFeedSize:  getEnvAsInt("APP_ACTIVITY_FEED_SIZE", 10),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWT.SecretKey == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT secret key must be changed in production")
		}
		if c.Security.CSRFKey == "32-byte-long-auth-key-change-me!" {
			return fmt.Errorf("CSRF key must be changed in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
	}

	if c.App.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
