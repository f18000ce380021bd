// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	// DefaultFrontendURL is reported when FRONTEND_URL is unset.
	DefaultFrontendURL = "http://localhost:5173"
	// DefaultEnvironment is reported when NODE_ENV is unset.
	DefaultEnvironment = "development"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	Port        int    `env:"PORT" envDefault:"8080"`
	AdminPort   int    `env:"ADMIN_PORT" envDefault:"9090"`
	FrontendURL string `env:"FRONTEND_URL"`

	// NodeEnv is kept raw: an unset value must not enable development behavior.
	NodeEnv string `env:"NODE_ENV"`

	// Database (MongoDB, or PostgreSQL when the URL uses a postgres scheme)
	DatabaseURL    string        `env:"MONGODB_URI,required,notEmpty"`
	DatabaseName   string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`

	// Cache (Redis). Empty disables rate limiting and the readiness check.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Error reporting
	SentryDSN string `env:"SENTRY_DSN"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting for the auth route group (per client IP)
	RateLimitAuthEnabled bool `env:"RATE_LIMIT_AUTH_ENABLED" envDefault:"true"`
	RateLimitAuthRPS     int  `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst   int  `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`

	// TrustProxyHeaders takes client IPs from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// CORS configuration
	// Comma-separated list of extra allowed origins; FRONTEND_URL is always allowed.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment reports whether NODE_ENV is explicitly set to development.
func (c *Config) IsDevelopment() bool {
	return c.NodeEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.NodeEnv == "production"
}

// Environment returns the environment name for display, defaulting to development.
func (c *Config) Environment() string {
	if c.NodeEnv == "" {
		return DefaultEnvironment
	}
	return c.NodeEnv
}

// Frontend returns the configured frontend URL, or the local default.
func (c *Config) Frontend() string {
	if c.FrontendURL == "" {
		return DefaultFrontendURL
	}
	return c.FrontendURL
}

// AdminEnabled reports whether the admin listener should be started.
func (c *Config) AdminEnabled() bool {
	return c.AdminPort > 0
}

// GetCORSAllowedOrigins returns FRONTEND_URL followed by the parsed
// CORS_ALLOWED_ORIGINS entries, without duplicates.
func (c *Config) GetCORSAllowedOrigins() []string {
	seen := make(map[string]bool)
	result := make([]string, 0, 4)

	add := func(origin string) {
		trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
		if trimmed == "" || seen[trimmed] {
			return
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}

	add(c.Frontend())
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		add(origin)
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
