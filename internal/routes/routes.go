package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stardevs/community-backend/internal/config"
	"github.com/stardevs/community-backend/internal/handlers"
	"github.com/stardevs/community-backend/internal/metrics"
	"github.com/stardevs/community-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	botHandler *handlers.BotHandler,
	scamLogHandler *handlers.ScamLogHandler,
	healthHandler *handlers.HealthHandler,
	m *metrics.Metrics,
) {
	// Prometheus scrape endpoint, outside the rate limiter
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	api := app.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	api.Get("/health", healthHandler.Check)

	// Website
	api.Get("/scam-logs", scamLogHandler.ListReports)
	api.Get("/scam-logs/:id", scamLogHandler.GetReport)
	api.Put("/scam-logs/:id/status", scamLogHandler.UpdateStatus)
	api.Get("/stats", scamLogHandler.GetStats)

	// Discord bot
	bot := api.Group("/bot")
	bot.Post("/scam-create", botHandler.CreateReport)
	bot.Get("/scam-info/:id", botHandler.GetReport)
	bot.Get("/scam-logs", botHandler.ListReports)
	bot.Post("/update-status", botHandler.UpdateStatus)
	bot.Delete("/scam-remove/:id", botHandler.RemoveReport)
	bot.Post("/update-member-count", botHandler.UpdateMemberCount)
	bot.Get("/member-count", botHandler.GetMemberCount)
	bot.Get("/discord-stats", botHandler.GetStats)
	bot.Post("/discord-stats", botHandler.UpdateStats)
	bot.Post("/dispatch/:operation", botHandler.Dispatch)

	// Must stay last so it only sees unmatched bot paths
	bot.All("/*", botHandler.NotFound)
}
