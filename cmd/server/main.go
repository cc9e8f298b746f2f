package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/payme/internal"
	"github.com/dukerupert/payme/internal/discord"
	"github.com/dukerupert/payme/internal/handler/api"
	"github.com/dukerupert/payme/internal/handler/webhook"
	"github.com/dukerupert/payme/internal/middleware"
	"github.com/dukerupert/payme/internal/paypal"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/dukerupert/payme/internal/router"
	"github.com/dukerupert/payme/internal/service"
	"github.com/dukerupert/payme/internal/telemetry"
	"github.com/dukerupert/payme/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Env,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := repository.New(pool)

	// Prometheus metrics
	httpMetrics := middleware.NewMetrics("payme")
	businessMetrics := telemetry.NewBusinessMetrics("payme")

	// Initialize PayPal gateway
	gateway := paypal.NewClient(
		cfg.PayPal.ClientID,
		cfg.PayPal.ClientSecret,
		cfg.PayPal.Mode,
		cfg.PayPal.WebhookID,
		businessMetrics,
		logger,
	)
	logger.Info("PayPal gateway initialized", "mode", cfg.PayPal.Mode)

	// Discord notifier for payment and reminder announcements
	notifier := discord.NewWebhookNotifier()

	// Initialize services
	invoiceService := service.NewInvoiceService(repo, gateway, businessMetrics, logger)
	userService := service.NewUserService(repo, logger)
	guildService := service.NewGuildService(repo, logger)
	templateService := service.NewTemplateService(repo, logger)
	clientService := service.NewClientService(repo, logger)

	// Rate limiters
	apiRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer apiRateLimiter.Stop()
	webhookRateLimiter := middleware.NewRateLimiter(middleware.WebhookRateLimiterConfig())
	defer webhookRateLimiter.Stop()

	// Router and middleware chain
	r := router.New(
		middleware.RequestID,
		telemetry.SentryMiddleware(),
		router.Recovery(logger),
		httpMetrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		httpMetrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Bearer-authenticated API surface
	apiRouter := r.Group(
		apiRateLimiter.Middleware,
		middleware.RequireAPIKey(cfg.APISecret, logger),
	)
	api.NewInvoiceHandler(invoiceService, guildService, notifier, logger).RegisterRoutes(apiRouter)
	api.NewUserHandler(userService).RegisterRoutes(apiRouter)
	api.NewGuildHandler(guildService).RegisterRoutes(apiRouter)
	api.NewTemplateHandler(templateService).RegisterRoutes(apiRouter)
	api.NewClientHandler(clientService).RegisterRoutes(apiRouter)
	api.NewStatsHandler(invoiceService).RegisterRoutes(apiRouter)

	// PayPal webhooks authenticate via signature verification, not the API key
	webhookRouter := r.Group(webhookRateLimiter.Middleware)
	webhook.NewPayPalHandler(gateway, invoiceService, guildService, notifier, businessMetrics, logger).
		RegisterRoutes(webhookRouter)

	// Overdue invoice sweeper
	sweeper := worker.NewSweeper(invoiceService, worker.SweeperConfig{
		Interval: cfg.Sweep.Interval,
		MaxAge:   time.Duration(cfg.Sweep.MaxAgeDays) * 24 * time.Hour,
	}, businessMetrics, logger)
	go func() {
		if err := sweeper.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sweeper stopped", "error", err)
		}
	}()

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("Server stopped")

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
