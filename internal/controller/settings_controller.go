package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	Profile(ctx *fiber.Ctx) error
	Agents(ctx *fiber.Ctx) error
	UpdateAgent(ctx *fiber.Ctx) error
}

type settingsController struct {
	service service.ISettingsService
	auth    service.IAuthService
}

func NewSettingsController(service service.ISettingsService, auth service.IAuthService) ISettingsController {
	return &settingsController{service: service, auth: auth}
}

func (c *settingsController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/settings")
	h.Use(session)
	h.Get("/profile", c.Profile)
	h.Get("/agents", c.Agents)
	h.Post("/agents", c.UpdateAgent)
}

func (c *settingsController) Profile(ctx *fiber.Ctx) error {
	res, err := c.auth.UserInfo(ctx.Context(), serverutils.SessionToken(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *settingsController) Agents(ctx *fiber.Ctx) error {
	res, err := c.service.Agents(ctx.Context(), serverutils.SessionToken(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *settingsController) UpdateAgent(ctx *fiber.Ctx) error {
	var req dto.UpdateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.UpdateAgent(ctx.Context(), serverutils.SessionToken(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent updated", nil))
}
