// Package router composes the public and admin HTTP handlers.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fundbridge/fundbridge/internal/apperr"
	"github.com/fundbridge/fundbridge/internal/handler"
	"github.com/fundbridge/fundbridge/internal/metrics"
	"github.com/fundbridge/fundbridge/internal/middleware"
	"github.com/fundbridge/fundbridge/internal/routes"
)

// Config holds everything the public router needs besides the route groups.
type Config struct {
	Logger  *slog.Logger
	Errors  *apperr.Handler
	Metrics metrics.Recorder
	// Tracing wraps each request after panic recovery, e.g. the Sentry hub
	// middleware. Nil skips it.
	Tracing func(http.Handler) http.Handler

	IsDevelopment bool
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites those headers;
	// otherwise clients can choose their own rate-limit bucket.
	TrustProxyHeaders bool

	AllowedOrigins []string
	MaxBodySize    int64
}

// New builds the public router: GET /, the route groups in the given order,
// GET /api/health, and a structured 404 for everything else.
func New(cfg Config, h *handler.Handler, groups ...*routes.Group) *chi.Mux {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	r := chi.NewRouter()

	// Global middleware
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	// A trailing slash is ignored and HEAD is answered by GET routes.
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Recoverer(cfg.Logger, cfg.Errors, apperr.FromPanic))
	if cfg.Tracing != nil {
		r.Use(cfg.Tracing)
	}
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	r.Use(middleware.CORS(corsCfg))

	if cfg.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	// Installed before mounting so every group inherits them.
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	r.Get("/", h.Root)

	for _, g := range groups {
		g.Mount(r)
	}

	r.Get("/api/health", h.APIHealth)

	return r
}

// NewAdmin builds the admin router serving health checks and metrics.
func NewAdmin(health *handler.HealthHandler, m *handler.MetricsHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/metrics", m.Metrics)

	return r
}
