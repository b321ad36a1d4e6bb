package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExecutionController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	Show(ctx *fiber.Ctx) error
}

type executionController struct {
	service service.IExecutionService
}

func NewExecutionController(service service.IExecutionService) IExecutionController {
	return &executionController{service: service}
}

func (c *executionController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/executions")
	h.Use(session)
	h.Get(":id", c.Show)
}

func (c *executionController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing execution id"))
	}

	res, err := c.service.Status(ctx.Context(), serverutils.SessionToken(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
