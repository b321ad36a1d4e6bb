package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/chat")
	h.Use(session)
	h.Post("", c.Send)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.Context(), serverutils.SessionToken(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
