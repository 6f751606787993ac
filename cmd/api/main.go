// Package main is the entrypoint for the Projectdesk API server.
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

	"github.com/projectdesk/projectdesk/internal/auth"
	"github.com/projectdesk/projectdesk/internal/cache"
	"github.com/projectdesk/projectdesk/internal/config"
	"github.com/projectdesk/projectdesk/internal/handler"
	"github.com/projectdesk/projectdesk/internal/metrics"
	"github.com/projectdesk/projectdesk/internal/middleware"
	"github.com/projectdesk/projectdesk/internal/repository"
	"github.com/projectdesk/projectdesk/internal/server"
	"github.com/projectdesk/projectdesk/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database; this also syncs the schema. Startup is
	// sequential and blocking on purpose: the process must not accept
	// connections before the store is reachable and migrated.
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to initialize database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database, schema synced")

	// Initialize rate limit store
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

	// Initialize auth primitives
	hasher := auth.NewHasher(cfg.HashTimeCost)
	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	authService := service.NewAuthService(repo, hasher, tokens, metricsRecorder)
	projectService := service.NewProjectService(repo, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(authService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, authHandler, projectHandler, tokens, repo, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
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

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	tokens *auth.Tokens,
	repo *repository.Repository,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.GetCORSAllowedOrigins(),
	}))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root liveness endpoint
	r.Get("/", h.Hello)

	// Auth middleware configuration
	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
		Users:  repo,
	})

	// Rate limit for the credential endpoints
	rateLimitAuth := middleware.RateLimitAuth(middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitAuthEnabled,
		RPM:     cfg.RateLimitAuthRPM,
		Burst:   cfg.RateLimitAuthBurst,
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(rateLimitAuth)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.With(requireAuth).Post("/", projectHandler.Create)
			r.With(requireAuth).Put("/{id}", projectHandler.Update)
			r.With(requireAuth).Delete("/{id}", projectHandler.Delete)
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
