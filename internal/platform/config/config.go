// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Mail) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Kinoteka web server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) for sessions and flash messages
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// SessionSecret signs OAuth state tokens.
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"336h"`

	// Site identity used in outgoing mail
	SiteName   string `env:"SITE_NAME"   envDefault:"Kinoteka"`
	SiteDomain string `env:"SITE_DOMAIN" envDefault:"localhost:8080"`
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@moviecatalog.com"`

	// Outgoing mail
	Mail MailConfig

	// Third-party login (Yandex OAuth 2.0)
	YandexClientID     string `env:"YANDEX_OAUTH2_KEY"`
	YandexClientSecret string `env:"YANDEX_OAUTH2_SECRET"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// MailConfig selects and configures the welcome mail transport.
type MailConfig struct {
	// Backend is either "console" (log only) or "smtp".
	Backend  string `env:"EMAIL_BACKEND"       envDefault:"console"`
	Host     string `env:"EMAIL_HOST"          envDefault:"localhost"`
	Port     int    `env:"EMAIL_PORT"          envDefault:"25"`
	UseTLS   bool   `env:"EMAIL_USE_TLS"       envDefault:"false"`
	Username string `env:"EMAIL_HOST_USER"`
	Password string `env:"EMAIL_HOST_PASSWORD"`
	From     string `env:"DEFAULT_FROM_EMAIL"  envDefault:"noreply@moviecatalog.com"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.Mail.Backend != "console" && cfg.Mail.Backend != "smtp" {
		return nil, fmt.Errorf("config: unsupported EMAIL_BACKEND %q", cfg.Mail.Backend)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OAuthEnabled reports whether Yandex login is configured.
func (c *Config) OAuthEnabled() bool {
	return c.YandexClientID != "" && c.YandexClientSecret != ""
}

// SiteURL returns the absolute base URL of the site.
func (c *Config) SiteURL() string {
	scheme := "https"
	if c.IsDevelopment() {
		scheme = "http"
	}
	return scheme + "://" + c.SiteDomain
}

// AllowedOrigins returns the site origin plus any comma-separated EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	origins := []string{c.SiteURL()}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
