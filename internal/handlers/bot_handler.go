package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/stardevs/community-backend/internal/botapi"
)

// ActorHeader names the Discord user a bot request is made on behalf of.
const ActorHeader = "X-Bot-Actor"

// BotHandler exposes the bot façade over HTTP. Every response is an envelope.
type BotHandler struct {
	facade *botapi.Facade
}

func NewBotHandler(facade *botapi.Facade) *BotHandler {
	return &BotHandler{facade: facade}
}

func (h *BotHandler) CreateReport(c *fiber.Ctx) error {
	var req botapi.CreateReport
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	return h.respond(c, &req)
}

func (h *BotHandler) GetReport(c *fiber.Ctx) error {
	return h.respond(c, &botapi.GetReport{ID: c.Params("id")})
}

func (h *BotHandler) ListReports(c *fiber.Ctx) error {
	var req botapi.ListReports
	if err := c.QueryParser(&req.Params); err != nil {
		return invalidBody(c)
	}
	return h.respond(c, &req)
}

func (h *BotHandler) UpdateStatus(c *fiber.Ctx) error {
	var req botapi.SetStatus
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	return h.respond(c, &req)
}

func (h *BotHandler) RemoveReport(c *fiber.Ctx) error {
	return h.respond(c, &botapi.RemoveReport{LogID: c.Params("id")})
}

func (h *BotHandler) UpdateMemberCount(c *fiber.Ctx) error {
	var req botapi.SetMemberCount
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	return h.respond(c, &req)
}

func (h *BotHandler) GetMemberCount(c *fiber.Ctx) error {
	return h.respond(c, &botapi.GetMemberCount{})
}

func (h *BotHandler) GetStats(c *fiber.Ctx) error {
	return h.respond(c, &botapi.GetStats{})
}

func (h *BotHandler) UpdateStats(c *fiber.Ctx) error {
	var req botapi.UpdateStats
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	return h.respond(c, &req)
}

// Dispatch runs any operation by name with the raw JSON body as its payload.
func (h *BotHandler) Dispatch(c *fiber.Ctx) error {
	env := h.facade.DispatchNamed(actor(c), utils.CopyString(c.Params("operation")), c.Body())
	return c.Status(statusFor(env, false)).JSON(env)
}

// NotFound answers any bot path without a route.
func (h *BotHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(botapi.Envelope{
		Success: false,
		Error:   "Endpoint not found: " + c.Method() + " " + c.Path(),
	})
}

func (h *BotHandler) respond(c *fiber.Ctx, req botapi.Request) error {
	env := h.facade.Dispatch(actor(c), req)
	_, created := req.(*botapi.CreateReport)
	return c.Status(statusFor(env, created)).JSON(env)
}

func actor(c *fiber.Ctx) string {
	// Header values point into the request buffer; activity entries outlive it
	if a := c.Get(ActorHeader); a != "" {
		return utils.CopyString(a)
	}
	return "bot"
}

func statusFor(env botapi.Envelope, created bool) int {
	if env.Success {
		if created {
			return fiber.StatusCreated
		}
		return fiber.StatusOK
	}
	switch env.Kind {
	case botapi.KindValidation:
		return fiber.StatusBadRequest
	case botapi.KindNotFound, botapi.KindUnknownOperation:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(botapi.Envelope{
		Success: false,
		Error:   "Invalid request body",
	})
}
