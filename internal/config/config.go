// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the studio site configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	AppURL        string `env:"STUDIO_APP_URL" envDefault:"http://localhost:8080"`
	DBPath        string `env:"STUDIO_DB_PATH" envDefault:"./data/studio.db"`
	SessionSecret string `env:"STUDIO_SESSION_SECRET,required"`
	ServerHost    string `env:"STUDIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"STUDIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"STUDIO_ENV" envDefault:"development"`
	LogLevel      string `env:"STUDIO_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"STUDIO_UPLOADS_DIR" envDefault:"./uploads"`

	// Landing page cache. Admin mutations invalidate it immediately.
	RedisURL    string `env:"STUDIO_REDIS_URL"`
	CachePrefix string `env:"STUDIO_CACHE_PREFIX" envDefault:"studio:"`
	CacheTTL    int    `env:"STUDIO_CACHE_TTL" envDefault:"30"` // seconds

	// Messaging bot that receives appointment requests.
	TelegramBotToken string `env:"STUDIO_TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"STUDIO_TELEGRAM_CHAT_ID"`
	TelegramAPIURL   string `env:"STUDIO_TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	Timezone         string `env:"STUDIO_TIMEZONE" envDefault:"Europe/Samara"`

	// Analytics and search engine verification
	MetrikaID          string `env:"STUDIO_METRIKA_ID"`
	YandexVerification string `env:"STUDIO_YANDEX_VERIFICATION"`

	// Admin seeding
	AdminEmail    string `env:"STUDIO_ADMIN_EMAIL"`
	AdminPassword string `env:"STUDIO_ADMIN_PASSWORD"`

	// Retention
	SubmissionRetentionDays int `env:"STUDIO_SUBMISSION_RETENTION_DAYS" envDefault:"180"`
	EventRetentionDays      int `env:"STUDIO_EVENT_RETENTION_DAYS" envDefault:"30"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// TelegramEnabled returns true if both bot credentials are present.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// SeedAdmin returns true if an admin account should be created on startup.
func (c Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// CacheDuration returns the landing page cache TTL.
func (c Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Location resolves the configured time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("unknown time zone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// MinAdminPasswordLength is the minimum length for a seeded admin password.
const MinAdminPasswordLength = 8

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("STUDIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("STUDIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("STUDIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.AdminEmail != "" && len(cfg.AdminPassword) < MinAdminPasswordLength {
		return nil, fmt.Errorf("STUDIO_ADMIN_PASSWORD must be at least %d characters when STUDIO_ADMIN_EMAIL is set",
			MinAdminPasswordLength)
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("STUDIO_CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	cfg.TelegramAPIURL = strings.TrimRight(cfg.TelegramAPIURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
