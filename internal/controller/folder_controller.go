package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFolderController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
}

type folderController struct {
	service service.IFolderService
}

func NewFolderController(service service.IFolderService) IFolderController {
	return &folderController{service: service}
}

func (c *folderController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/storage")
	h.Use(session)
	h.Get("/folders", c.List)
	h.Post("/folders", c.Create)
	h.Post("/move", c.Move)
}

func (c *folderController) List(ctx *fiber.Ctx) error {
	folder := ctx.Query("folder")
	res, err := c.service.List(ctx.Context(), serverutils.SessionToken(ctx), folder)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *folderController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.CreateFolder(ctx.Context(), serverutils.SessionToken(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Folder created", nil))
}

func (c *folderController) Move(ctx *fiber.Ctx) error {
	var req dto.MoveFileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.MoveFile(ctx.Context(), serverutils.SessionToken(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("File moved", nil))
}
