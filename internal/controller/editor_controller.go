package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"
	"github.com/benvansteenbergen/console-sub000/pkg/editflow"

	"github.com/gofiber/fiber/v2"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	Load(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Diff(ctx *fiber.Ctx) error
}

type editorController struct {
	service service.IEditorService
}

func NewEditorController(service service.IEditorService) IEditorController {
	return &editorController{service: service}
}

func (c *editorController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/editor")
	h.Use(session)
	h.Post("/diff", c.Diff)
	h.Get(":fileId", c.Load)
	h.Put(":fileId", c.Save)
}

func (c *editorController) Load(ctx *fiber.Ctx) error {
	fileID := ctx.Params("fileId")
	if fileID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file id"))
	}

	res, err := c.service.Load(ctx.Context(), serverutils.SessionToken(ctx), fileID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *editorController) Save(ctx *fiber.Ctx) error {
	fileID := ctx.Params("fileId")
	if fileID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file id"))
	}

	var req dto.SaveDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Save(ctx.Context(), serverutils.SessionToken(ctx), fileID, req.Content); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document saved", nil))
}

// Diff is display-only; nothing is persisted and the commit payload is
// unaffected by the segments returned here.
func (c *editorController) Diff(ctx *fiber.Ctx) error {
	var req dto.DiffRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	segments := editflow.Diff(req.Committed, req.Proposed)
	return ctx.JSON(serverutils.SuccessResponse("Success", segments))
}
