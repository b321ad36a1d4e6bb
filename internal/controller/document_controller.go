package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	List(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	ExtractText(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/documents")
	h.Use(session)
	h.Get("", c.List)
	h.Post("", c.Upload)
	h.Post("/extract-text", c.ExtractText)
	h.Delete(":id", c.Delete)
	h.Post(":id/analyze", c.Analyze)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context(), serverutils.SessionToken(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "No file provided"))
	}

	req := dto.UploadDocumentRequest{
		Cluster:    ctx.FormValue("cluster"),
		Visibility: ctx.FormValue("visibility"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), serverutils.SessionToken(ctx), file, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document uploaded", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing document id"))
	}

	if err := c.service.Delete(ctx.Context(), serverutils.SessionToken(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document deleted", nil))
}

func (c *documentController) Analyze(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing document id"))
	}

	executionID, err := c.service.Analyze(ctx.Context(), serverutils.SessionToken(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analysis started", fiber.Map{"execution_id": executionID}))
}

func (c *documentController) ExtractText(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "No file provided"))
	}

	res, err := c.service.ExtractText(ctx.Context(), serverutils.SessionToken(ctx), file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
