package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICreditsController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	Show(ctx *fiber.Ctx) error
}

type creditsController struct {
	service service.ICreditsService
}

func NewCreditsController(service service.ICreditsService) ICreditsController {
	return &creditsController{service: service}
}

func (c *creditsController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/credits")
	h.Use(session)
	h.Get("", c.Show)
}

func (c *creditsController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Credits(ctx.Context(), serverutils.SessionToken(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
