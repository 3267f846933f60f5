package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/applications"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/dashboard"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/documents"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/interviews"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/reminders"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/database"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/logging"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/routes"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/services"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/storage/redisstore"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	stdout := logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// applications must precede the modules whose tables reference it
	modules := []apps.Module{
		dashboard.New(),
		applications.New(),
		interviews.New(),
		documents.New(),
		reminders.New(),
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB, modules); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records also go to system_logs
	dbLogHandler := logging.AttachDB(database.DB, stdout)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Shared rate-limit counters
	var limiterStorage fiber.Storage
	if cfg.RedisAddr != "" {
		store, err := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Error("redis unavailable, rate limits stay in memory", "error", err)
		} else {
			limiterStorage = store
			defer store.Close()
		}
	}

	authService := services.NewAuthService(database.DB, cfg)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, routes.Deps{
		Config:        cfg,
		DB:            database.DB,
		AuthService:   authService,
		AuthHandler:   handlers.NewAuthHandler(authService, cfg),
		HealthHandler: handlers.NewHealthHandler(),
		Storage:       limiterStorage,
		Modules:       modules,
	})
	for _, m := range modules {
		slog.Info("module registered", "module", m.ID())
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
