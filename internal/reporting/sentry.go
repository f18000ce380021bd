// Package reporting forwards server-side errors to Sentry.
package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry settings. An empty DSN disables reporting.
type Config struct {
	DSN         string
	Environment string
	Release     string
	Debug       bool
}

// Reporter sends errors to Sentry. The zero value is a disabled reporter.
type Reporter struct {
	enabled      bool
	flushTimeout time.Duration
}

// New initializes the Sentry SDK. With an empty DSN it returns a disabled
// reporter and does not touch the SDK.
func New(cfg Config) (*Reporter, error) {
	if cfg.DSN == "" {
		return &Reporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry initialization failed: %w", err)
	}

	return &Reporter{enabled: true, flushTimeout: 2 * time.Second}, nil
}

// Enabled reports whether errors are being sent.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Report captures err on the request-scoped hub when present.
func (r *Reporter) Report(ctx context.Context, err error) {
	if !r.Enabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// Flush waits for buffered events to be sent.
func (r *Reporter) Flush(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}

	timeout := r.flushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !sentry.Flush(timeout) {
		return fmt.Errorf("sentry flush timed out after %s", timeout)
	}
	return nil
}

// Middleware attaches a cloned hub carrying the request to each request
// context so captured errors include request details.
func (r *Reporter) Middleware(next http.Handler) http.Handler {
	if !r.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(req)
		ctx := sentry.SetHubOnContext(req.Context(), hub)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}
