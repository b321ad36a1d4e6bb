package controller

import (
	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service    service.IAuthService
	sessionCfg config.SessionConfig
}

func NewAuthController(service service.IAuthService, sessionCfg config.SessionConfig) IAuthController {
	return &authController{service: service, sessionCfg: sessionCfg}
}

func (c *authController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/me", session, c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	token, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	// The upstream token leaves this handler only inside the HTTP-only cookie.
	cookie, err := serverutils.IssueSessionCookie(c.sessionCfg, token, req.Email)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)

	return ctx.JSON(serverutils.SuccessResponse("Login successful", dto.LoginResponse{Email: req.Email}))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(serverutils.ClearSessionCookie(c.sessionCfg))
	return ctx.JSON(serverutils.SuccessResponse("Logged out successfully", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	res, err := c.service.UserInfo(ctx.Context(), serverutils.SessionToken(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
