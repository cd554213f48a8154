package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stardevs/community-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(CORS(cfg))
	app.Use(SecurityHeaders())
	app.Use(RateLimit(cfg.RateLimitPerMinute))
	app.Get("/api/scam-logs", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestCORSPreflight(t *testing.T) {
	app := newApp(&config.Config{CORSOrigins: "https://stardevs.dev", RateLimitPerMinute: 10})

	req := httptest.NewRequest(http.MethodOptions, "/api/scam-logs", nil)
	req.Header.Set("Origin", "https://stardevs.dev")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://stardevs.dev", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-Bot-Actor")
	assert.Equal(t, "600", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORSExposesRequestID(t *testing.T) {
	app := newApp(&config.Config{CORSOrigins: "*", RateLimitPerMinute: 10})

	req := httptest.NewRequest(http.MethodGet, "/api/scam-logs", nil)
	req.Header.Set("Origin", "https://stardevs.dev")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.HeaderXRequestID, resp.Header.Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	app := newApp(&config.Config{CORSOrigins: "*", RateLimitPerMinute: 1})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/scam-logs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/scam-logs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
