package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stardevs/community-backend/internal/botapi"
	"github.com/stardevs/community-backend/internal/dto"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stardevs/community-backend/internal/query"
	"github.com/stardevs/community-backend/internal/services"
)

// ScamLogHandler serves the community website's scam log table and review modal.
type ScamLogHandler struct {
	reports *services.ScamLogService
	stats   *services.StatsService
	facade  *botapi.Facade
}

func NewScamLogHandler(reports *services.ScamLogService, stats *services.StatsService, facade *botapi.Facade) *ScamLogHandler {
	return &ScamLogHandler{reports: reports, stats: stats, facade: facade}
}

func (h *ScamLogHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", query.StatusAll)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if status != query.StatusAll && !models.ReportStatus(status).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid status filter",
		})
	}

	all, err := h.reports.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch scam logs",
		})
	}

	params := query.Params{Status: status, Search: c.Query("search"), Limit: limit, Offset: offset}
	return c.JSON(dto.ScamLogListResponse{
		Reports: query.Apply(all, params),
		Total:   query.Count(all, params),
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *ScamLogHandler) GetReport(c *fiber.Ctx) error {
	report, found, err := h.reports.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch scam log",
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Scam log not found",
		})
	}
	return c.JSON(report)
}

// UpdateStatus records a staff verdict. It goes through the façade so the
// change is serialized with bot commands and lands in the activity log.
func (h *ScamLogHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	env := h.facade.Dispatch("website", &botapi.SetStatus{LogID: c.Params("id"), Status: req.Status})
	if !env.Success {
		return c.Status(statusFor(env, false)).JSON(dto.ErrorResponse{
			Error: true, Message: env.Error,
		})
	}
	return c.JSON(env.Data)
}

func (h *ScamLogHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stats.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}
