// Package main is the entrypoint for the Flightboard API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/flightboard/flightboard/internal/cache"
	"github.com/flightboard/flightboard/internal/config"
	"github.com/flightboard/flightboard/internal/events"
	"github.com/flightboard/flightboard/internal/handler"
	"github.com/flightboard/flightboard/internal/metrics"
	"github.com/flightboard/flightboard/internal/middleware"
	"github.com/flightboard/flightboard/internal/repository"
	"github.com/flightboard/flightboard/internal/server"
	"github.com/flightboard/flightboard/internal/service"
	"github.com/flightboard/flightboard/internal/tracker"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize metrics and the activity event pipeline
	metricsRecorder := metrics.NewInMemory()
	publisher := events.NewPublisher(cacheClient.Client(), logger, metricsRecorder)

	// Initialize services
	accountService := service.NewAccountService(repo, cacheClient, publisher, metricsRecorder, cfg.SessionTTL)
	flightService := service.NewFlightService(repo, publisher, metricsRecorder)
	referenceService := service.NewReferenceService(repo, cacheClient, metricsRecorder)

	// Initialize the map tracker. The reference service doubles as the
	// airport resolver so map builds share the airport cache.
	feed := tracker.NewFeedLoader(cfg.FeedPath, cfg.FeedURL, cfg.FeedFetchTimeout)
	flightTracker := tracker.New(feed, referenceService, logger, cfg.ArcSegments)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(accountService, logger)
	flightHandler := handler.NewFlightHandler(flightService, logger)
	referenceHandler := handler.NewReferenceHandler(referenceService, logger)
	mapHandler := handler.NewMapHandler(flightTracker, flightService, logger, metricsRecorder)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(h, healthHandler, authHandler, flightHandler, referenceHandler, mapHandler, metricsHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Start the event worker that drains the Redis stream into Postgres.
	if cfg.EventsWorkerEnabled {
		eventRepo := repository.NewFlightEventRepository(repo)
		worker := events.NewWorker(cacheClient.Client(), eventRepo, logger, events.NewConsumerID(), metricsRecorder)

		workerCtx, cancelWorker := context.WithCancel(ctx)
		go func() {
			if err := worker.Run(workerCtx); err != nil {
				logger.Error("event worker stopped", "error", err)
			}
		}()

		srv.OnShutdown("event_worker", func(shutdownCtx context.Context) error {
			cancelWorker()
			return worker.Shutdown(shutdownCtx)
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"events_worker", cfg.EventsWorkerEnabled,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
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

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	flightHandler *handler.FlightHandler,
	referenceHandler *handler.ReferenceHandler,
	mapHandler *handler.MapHandler,
	metricsHandler *handler.MetricsHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.IsDevelopment = cfg.IsDevelopment()
	securityCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	securityCfg.MaxRequestBodySize = cfg.MaxRequestBodySize

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(securityCfg))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Index)

	// Session middleware configuration
	sessionCfg := middleware.SessionConfig{
		Logger: logger,
		Cache:  cacheClient,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:      logger,
		Cache:       cacheClient,
		AuthEnabled: cfg.RateLimitAuthEnabled,
		AuthRPS:     cfg.RateLimitAuthRPS,
		AuthBurst:   cfg.RateLimitAuthBurst,
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints. Logged-in users get 409 here.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnonymous(sessionCfg))
			r.Use(middleware.RateLimitAuth(rateLimitCfg))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Everything else requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessionCfg))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/session", authHandler.Session)

			r.Route("/flights", func(r chi.Router) {
				r.Get("/", flightHandler.List)
				r.Get("/mine", flightHandler.ListMine)
				r.Post("/", flightHandler.Create)
				r.Delete("/{id}", flightHandler.Delete)
			})

			r.Get("/airlines", referenceHandler.Airlines)
			r.Get("/airports", referenceHandler.Airports)
			r.Get("/airports/{code}/location", referenceHandler.AirportLocation)

			r.Get("/map/flights", mapHandler.Flights)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
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

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
