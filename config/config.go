package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultTimezone is used when TIMEZONE is unset. Storage is always UTC;
// this zone is only for presenting timestamps to clients.
const DefaultTimezone = "Asia/Kolkata"

// Config holds all configuration for the application
type Config struct {
	Environment     string
	Port            string
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	PaginationLimit int
	Timezone        string
	CORSOrigins     []string
	Email           EmailConfig
}

// EmailConfig holds settings for the outbound mail adapter.
// Provider "ses" requires the AWS fields; "noop" logs instead of sending.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := environment()

	// Load .env file if not in production. We don't return an error here
	// because in production .env might not exist and we rely on system
	// environment variables.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        os.Getenv("PORT"),
		DBUser:      os.Getenv("POSTGRES_USER"),
		DBPassword:  os.Getenv("POSTGRES_PASSWORD"),
		DBHost:      os.Getenv("POSTGRES_HOST"),
		DBPort:      os.Getenv("POSTGRES_PORT"),
		DBName:      os.Getenv("POSTGRES_DB"),
		Timezone:    os.Getenv("TIMEZONE"),
		Email: EmailConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}

	// PAGINATION_LIMIT has no default: a missing or non-positive value is a
	// startup misconfiguration.
	limitStr := os.Getenv("PAGINATION_LIMIT")
	if limitStr == "" {
		return nil, fmt.Errorf("PAGINATION_LIMIT is required")
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("PAGINATION_LIMIT must be a positive integer, got %q", limitStr)
	}
	cfg.PaginationLimit = limit

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

// DBUrl assembles the Postgres connection string from the POSTGRES_* variables.
func (c *Config) DBUrl() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
