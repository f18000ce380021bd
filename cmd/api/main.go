// Package main is the entrypoint for the FundBridge API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fundbridge/fundbridge/internal/apperr"
	"github.com/fundbridge/fundbridge/internal/cache"
	"github.com/fundbridge/fundbridge/internal/config"
	"github.com/fundbridge/fundbridge/internal/database"
	"github.com/fundbridge/fundbridge/internal/handler"
	"github.com/fundbridge/fundbridge/internal/metrics"
	"github.com/fundbridge/fundbridge/internal/middleware"
	"github.com/fundbridge/fundbridge/internal/reporting"
	"github.com/fundbridge/fundbridge/internal/router"
	"github.com/fundbridge/fundbridge/internal/routes"
	"github.com/fundbridge/fundbridge/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run starts the API and blocks until ctx is cancelled or a server fails.
// Failures are logged here; the returned error only decides the exit code.
func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize error reporting
	reporter, err := reporting.New(reporting.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment(),
		Debug:       cfg.IsDevelopment(),
	})
	if err != nil {
		logger.Error("failed to initialize error reporting", slog.String("error", err.Error()))
		return fmt.Errorf("init error reporting: %w", err)
	}

	recorder, err := metrics.NewPrometheus()
	if err != nil {
		logger.Error("failed to initialize metrics", slog.String("error", err.Error()))
		return fmt.Errorf("init metrics: %w", err)
	}

	// Connect to the database before anything can accept requests.
	db, err := connectDatabase(ctx, cfg, recorder)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", database.SanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", database.RedactURL(cfg.DatabaseURL)),
		)
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connected", slog.String("driver", db.Driver()))

	// Initialize cache
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", database.SanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", database.RedactURL(cfg.RedisURL)),
			)
			_ = db.Close(context.Background())
			return fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis")
	}

	errs := apperr.NewHandler(logger, cfg.IsDevelopment(), reporter, recorder)

	// Route groups
	authLimit := middleware.RateLimitConfig{
		Logger:  logger,
		Metrics: recorder,
		Enabled: cfg.RateLimitAuthEnabled,
		RPS:     cfg.RateLimitAuthRPS,
		Burst:   cfg.RateLimitAuthBurst,
	}
	if cacheClient != nil {
		authLimit.Limiter = cacheClient
	}

	groups := []*routes.Group{
		routes.NewAuth(db, errs, authLimit),
		routes.NewStartups(db, errs),
		routes.NewInvestments(db, errs),
	}

	// Setup routers
	public := router.New(router.Config{
		Logger:            logger,
		Errors:            errs,
		Metrics:           recorder,
		Tracing:           reporter.Middleware,
		IsDevelopment:     cfg.IsDevelopment(),
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		AllowedOrigins:    cfg.GetCORSAllowedOrigins(),
		MaxBodySize:       cfg.MaxRequestBodySize,
	}, handler.New(), groups...)

	srv := server.New("public", public, cfg.Port, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, logger)
	srv.OnShutdown("sentry", reporter.Flush)
	srv.OnShutdown("database", db.Close)
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })
	}

	servers := []*server.Server{srv}
	if cfg.AdminEnabled() {
		checks := []handler.Check{{Name: db.Driver(), Checker: db}}
		if cacheClient != nil {
			checks = append(checks, handler.Check{Name: "redis", Checker: cacheClient})
		} else {
			checks = append(checks, handler.Check{Name: "redis"})
		}

		admin := router.NewAdmin(handler.NewHealthHandler(checks...), handler.NewMetricsHandler(recorder))
		servers = append(servers, server.New("admin", admin, cfg.AdminPort, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, logger))
	}

	for _, s := range servers {
		if err := s.Listen(); err != nil {
			logger.Error("failed to bind listener", slog.String("error", err.Error()))
			_ = db.Close(context.Background())
			if cacheClient != nil {
				_ = cacheClient.Close()
			}
			return fmt.Errorf("bind listener: %w", err)
		}
	}

	logger.Info("server is running", slog.Int("port", cfg.Port))
	logger.Info("frontend URL", slog.String("frontend_url", cfg.Frontend()))
	logger.Info("environment", slog.String("env", cfg.Environment()))

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error { return s.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}

// connectDatabase performs the single startup connection attempt.
func connectDatabase(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (database.Handle, error) {
	start := time.Now()
	db, err := database.Connect(ctx, database.Config{
		URL:     cfg.DatabaseURL,
		Name:    cfg.DatabaseName,
		Timeout: cfg.ConnectTimeout,
	})

	driver := "unknown"
	if db != nil {
		driver = db.Driver()
	}
	recorder.ObserveDatabaseConnect(driver, time.Since(start), err)

	return db, err
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
