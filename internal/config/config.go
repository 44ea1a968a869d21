package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App   AppConfig
	Site  SiteConfig
	Redis RedisConfig
	JWT   JWTConfig
	Admin AdminConfig
	SMTP  SMTPConfig
	MinIO MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// SiteConfig drives the hostname router: requests arriving on the
// admin subdomain are rewritten under the /admin prefix.
type SiteConfig struct {
	BaseDomain     string // e.g. "institute.edu"
	AdminSubdomain string // hostname label, e.g. "admin"
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	SessionExpiryHrs  int
	SessionCookieName string
}

// AdminConfig is the single content-manager credential. The site has no
// self-service registration; the account is provisioned via environment.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt hash
}

// SMTPConfig configures the contact relay. Host and To are required for
// the relay to be considered configured.
type SMTPConfig struct {
	Host string
	Port string
	From string
	To   string // inbox that receives contact form submissions
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Institute API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Site: SiteConfig{
			BaseDomain:     getEnv("SITE_BASE_DOMAIN", "localhost"),
			AdminSubdomain: getEnv("SITE_ADMIN_SUBDOMAIN", "admin"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			SessionExpiryHrs:  getEnvInt("JWT_SESSION_EXPIRY_HOURS", 24),
			SessionCookieName: getEnv("JWT_SESSION_COOKIE", "admin_session"),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", ""),
			Port: getEnv("SMTP_PORT", "587"),
			From: getEnv("SMTP_FROM", "noreply@institute.edu"),
			To:   getEnv("CONTACT_INBOX", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "institute"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable for the selected environment.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
		// Contact relay config is checked per-request so a missing SMTP
		// setup degrades to CONFIGURATION_ERROR responses, not a dead app.
		if c.SMTP.Host == "" {
			fmt.Println("WARNING: SMTP_HOST not set - contact relay will return configuration errors")
		}
	}

	return nil
}

// SMTPConfigured reports whether the contact relay can actually send.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.To != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
