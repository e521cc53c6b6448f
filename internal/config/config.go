// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultTokenSecret is the development-only JWT signing secret.
const defaultTokenSecret = "dev-key-123"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Persistence
	DataFile  string // path of the blog JSON document
	UploadDir string // directory for uploaded images

	// Auth
	TokenSecret string
	TokenTTL    time.Duration

	// CORS
	CORSOrigins []string

	// Valkey (optional response cache); empty addr disables caching
	ValkeyAddr     string
	ValkeyPassword string

	// S3-compatible storage (optional upload mirror)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from the environment, applying development
// defaults. Returns an error if critical values are missing in production.
func Load() (*Config, error) {
	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "5001"),
		Env:  envOrDefault("APP_ENV", "development"),

		DataFile:  envOrDefault("DATA_FILE", "data/blog.json"),
		UploadDir: envOrDefault("UPLOAD_DIR", "uploads"),

		TokenSecret: envOrDefault("JWT_SECRET", defaultTokenSecret),
		TokenTTL:    24 * time.Hour,

		CORSOrigins: splitList(envOrDefault("CORS_ORIGINS",
			"http://localhost:5001,http://127.0.0.1:5001")),

		ValkeyAddr:     os.Getenv("VALKEY_ADDR"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL is not a valid duration: %w", err)
		}
		cfg.TokenTTL = parsed
	}

	if cfg.Env == "production" && cfg.TokenSecret == defaultTokenSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated value into trimmed, non-empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
