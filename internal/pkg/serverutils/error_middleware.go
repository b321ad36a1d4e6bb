package serverutils

import (
	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by downstream handlers into
// the JSON envelope. Services never let raw upstream failures reach the
// client: anything that is not a typed AppError becomes a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			if appErr.Code >= 500 {
				log.Error("HTTP", "Request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"error": appErr.Error(),
				})
			}
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal error"))
	}
}
