package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stardevs/community-backend/internal/database"
	"github.com/stardevs/community-backend/internal/dto"
	"github.com/stardevs/community-backend/internal/kvstore"
	"gorm.io/gorm"
)

type HealthHandler struct {
	store kvstore.Store
	db    *gorm.DB
}

// NewHealthHandler checks store, and db when it is not nil.
func NewHealthHandler(store kvstore.Store, db *gorm.DB) *HealthHandler {
	return &HealthHandler{store: store, db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     "ok",
	}
	if err := h.store.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Store = "unhealthy: " + err.Error()
	}
	if h.db != nil {
		resp.DB = "ok"
		if err := database.Ping(h.db); err != nil {
			resp.Status = "degraded"
			resp.DB = "unhealthy: " + err.Error()
		}
	}

	code := fiber.StatusOK
	if resp.Status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}
