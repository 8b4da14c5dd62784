// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or
// environment variables.
type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"APP_ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// AdminUserID designates the single privileged account. The site runs a
	// deliberate single-admin scheme: by convention the first registered
	// account (ID 1) administers the blog, but the rule lives here so it is
	// configuration, not a magic number.
	AdminUserID uint   `mapstructure:"ADMIN_USER_ID"`
	SiteURL     string `mapstructure:"SITE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	SMTPSender       string `mapstructure:"SMTP_SENDER"`
	SMTPPassword     string `mapstructure:"SMTP_PASSWORD"`
	ContactRecipient string `mapstructure:"CONTACT_RECIPIENT"`
}

// LoadConfig loads application configuration from file and environment
// variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults cover
	// everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("DATABASE_URL", "blog.db")
	viper.SetDefault("ADMIN_USER_ID", 1)
	viper.SetDefault("SITE_URL", "http://localhost:8375/")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_SENDER", "")
	viper.SetDefault("CONTACT_RECIPIENT", "")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// UsesPostgres reports whether DATABASE_URL points at a PostgreSQL server.
// Anything else is treated as a sqlite file path (the embedded default).
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://") ||
		strings.Contains(c.DatabaseURL, "host=")
}

// Validate ensures required configuration values are present and meet
// security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.AdminUserID == 0 {
		return errors.New("ADMIN_USER_ID is required")
	}
	if c.SiteURL == "" {
		return errors.New("SITE_URL is required")
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	if isProduction {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.SMTPSender != "" && c.SMTPPassword == "" {
			log.Println("WARNING: SMTP_SENDER is set but SMTP_PASSWORD is empty; contact mail will fail to authenticate.")
		}
	} else {
		if len(c.JWTSecret) < 32 {
			log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
		}
	}

	return nil
}
