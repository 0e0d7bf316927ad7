package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// InsecureDefaultSecret is the placeholder signing secret used when
// JWT_SECRET is not set. Production deployments must override it.
const InsecureDefaultSecret = "change_me_in_production"

// Config holds all configuration for the application. It is constructed
// once in main and passed by reference; request handlers never read
// ambient environment state.
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    BootstrapAdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // "sqlite" (default) or "mysql"
	Path     string // sqlite database file
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// BootstrapAdminConfig optionally seeds an initial admin account at
// startup. Skipped entirely when Email is empty.
type BootstrapAdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))
	if expiryHours < 1 {
		expiryHours = 24
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "ulevha.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "ulevha"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", InsecureDefaultSecret),
			ExpiryHours: expiryHours,
		},
		Admin: BootstrapAdminConfig{
			Name:     getEnv("ADMIN_NAME", "Admin User"),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	if config.JWT.Secret == InsecureDefaultSecret {
		if config.IsProd() {
			log.Println("⚠️ JWT_SECRET is not set: running in prod with the insecure placeholder secret")
		} else {
			log.Println("Warning: JWT_SECRET not set, using insecure placeholder")
		}
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
