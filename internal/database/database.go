// Package database establishes the application's single database connection.
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Common errors for connection setup.
var (
	ErrMissingURL        = errors.New("database URL is empty")
	ErrUnsupportedScheme = errors.New("unsupported database URL scheme")
)

// Driver names reported by Handle.Driver.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
)

// Handle is an open, verified database connection shared by the route groups.
type Handle interface {
	Driver() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config holds connection settings.
type Config struct {
	URL string
	// Name selects the Mongo database. Empty means the URI path.
	Name string
	// Timeout bounds the whole connect attempt. Zero means no extra bound.
	Timeout time.Duration
}

// Connect opens a connection for cfg.URL, choosing the driver from the URL
// scheme, and pings it before returning. It never retries.
func Connect(ctx context.Context, cfg Config) (Handle, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}

	driver, err := driverFor(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if driver == DriverMongo {
		m, err := connectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	p, err := connectPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func driverFor(raw string) (string, error) {
	scheme, _, ok := strings.Cut(raw, "://")
	if !ok {
		return "", fmt.Errorf("%w: missing scheme", ErrUnsupportedScheme)
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

// RedactURL strips the password from a connection URL so it can be logged.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// SanitizeError renders err with every secret URL replaced by its redacted form.
func SanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := RedactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
