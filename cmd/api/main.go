// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/makao-dev/makao-api/internal/admin"
	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/config"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/health"
	"github.com/makao-dev/makao-api/internal/identity"
	"github.com/makao-dev/makao-api/internal/lease"
	"github.com/makao-dev/makao-api/internal/maintenance"
	"github.com/makao-dev/makao-api/internal/middleware"
	"github.com/makao-dev/makao-api/internal/notification"
	"github.com/makao-dev/makao-api/internal/payment"
	"github.com/makao-dev/makao-api/internal/property"
	"github.com/makao-dev/makao-api/internal/server"
	"github.com/makao-dev/makao-api/internal/user"
	"github.com/makao-dev/makao-api/internal/webhook"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	sessionVerifier, err := identity.NewVerifier(cfg.Identity)
	if err != nil {
		return err
	}
	logger.Info("identity verifier initialized",
		"algorithm", "RS256",
		"issuer", cfg.Identity.Issuer,
	)

	signatureVerifier, err := webhook.NewSvixVerifier(cfg.Webhook.SigningSecret)
	if err != nil {
		return err
	}

	gate := authz.NewGate()

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	propertyRepo := property.NewRepository(db.DB)
	propertySvc := property.NewService(propertyRepo, gate, logger)
	propertyHandler := property.NewHandler(propertySvc)

	leaseRepo := lease.NewRepository(db.DB)
	leaseSvc := lease.NewService(leaseRepo, propertySvc, gate, logger)
	leaseHandler := lease.NewHandler(leaseSvc)

	paymentRepo := payment.NewRepository(db.DB)
	paymentSvc := payment.NewService(paymentRepo, leaseSvc, gate, logger)
	paymentHandler := payment.NewHandler(paymentSvc)

	maintenanceRepo := maintenance.NewRepository(db.DB)
	maintenanceSvc := maintenance.NewService(maintenanceRepo, gate, logger)
	maintenanceHandler := maintenance.NewHandler(maintenanceSvc)

	notificationRepo := notification.NewRepository(db.DB)
	notificationSvc := notification.NewService(notificationRepo, gate, logger)
	notificationHandler := notification.NewHandler(notificationSvc)

	webhookHandler := webhook.NewHandler(signatureVerifier, userSvc, logger)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Stats:      admin.NewStatsRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	webhookHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(
		sessionVerifier,
		cfg.Identity.SessionCookie,
	)
	resolveRole := middleware.ResolveRole(userSvc)
	adminOnly := middleware.Authorize(gate, authz.OpViewSystemStats)

	router.Route("/api", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(resolveRole)

		userHandler.RegisterRoutes(r)
		propertyHandler.RegisterRoutes(r)
		leaseHandler.RegisterRoutes(r)
		paymentHandler.RegisterRoutes(r)
		maintenanceHandler.RegisterRoutes(r)
		notificationHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
