package serverutils

import (
	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP status codes and a JSON
// envelope. Unknown errors become 500s without leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		switch apperror.KindOf(err) {
		case apperror.KindValidation:
			status = fiber.StatusBadRequest
			message = err.Error()
		case apperror.KindNotFound:
			status = fiber.StatusNotFound
			message = err.Error()
		case apperror.KindCapacity:
			status = fiber.StatusConflict
			message = err.Error()
		case apperror.KindTransient:
			status = fiber.StatusServiceUnavailable
			message = "Temporary failure, please retry"
		default:
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
				message = fiberErr.Message
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

// AdminKeyMiddleware gates the admin surface behind a static credential.
func AdminKeyMiddleware(apiKey string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if apiKey == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Admin surface disabled"))
		}
		if ctx.Get("X-Admin-Key") != apiKey {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid admin key"))
		}
		return ctx.Next()
	}
}
