package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/stardevs/community-backend/internal/bootstrap"
	"github.com/stardevs/community-backend/internal/config"
	"github.com/stardevs/community-backend/internal/dto"
	"github.com/stardevs/community-backend/internal/handlers"
	"github.com/stardevs/community-backend/internal/logging"
	"github.com/stardevs/community-backend/internal/metrics"
	"github.com/stardevs/community-backend/internal/middleware"
	"github.com/stardevs/community-backend/internal/routes"
)

func main() {
	// Structured logging (JSON to stdout)
	logger := logging.Setup()

	cfg := config.Load()

	if cfg.StoreDriver == "postgres" && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required for the postgres store")
		os.Exit(1)
	}

	// Sentry error tracking
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
			// ERROR+ records also go to Sentry
			logger = logging.Setup(logging.NewSentryHandler(nil))
		}
	}

	m := metrics.New()
	rt, err := bootstrap.Open(cfg, logger, bootstrap.Options{Background: true, Metrics: m})
	if err != nil {
		slog.Error("startup failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("scam log store ready", "driver", cfg.StoreDriver, "namespace", cfg.StoreNamespace)

	// Handlers
	botHandler := handlers.NewBotHandler(rt.Facade)
	scamLogHandler := handlers.NewScamLogHandler(rt.Reports, rt.Stats, rt.Facade)
	healthHandler := handlers.NewHealthHandler(rt.Store, rt.DB)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	if sentryEnabled {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, botHandler, scamLogHandler, healthHandler, m)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Flushes pending activity entries before the database goes away
	if err := rt.Close(); err != nil {
		slog.Error("storage close error", "error", err)
	}
	sentry.Flush(2 * time.Second)

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
