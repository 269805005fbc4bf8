package serverutils

import (
	"errors"

	"notevault-be/internal/apperrors"
	"notevault-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler builds the Fiber error handler that maps the application
// error taxonomy to HTTP statuses. Non-2xx bodies are always {message}.
// Unrecognized errors are logged and converted to an opaque 500 so internals
// never leak to the client.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var status int

		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrDuplicateIdentity):
			status = fiber.StatusBadRequest
		case errors.Is(err, apperrors.ErrInvalidCredentials),
			errors.Is(err, apperrors.ErrUnauthenticated):
			status = fiber.StatusUnauthorized
		case errors.Is(err, apperrors.ErrForbidden):
			status = fiber.StatusForbidden
		case errors.Is(err, apperrors.ErrNotFound):
			status = fiber.StatusNotFound
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
			}
			if log != nil {
				log.Error("http", "unhandled request error", map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
					"error":  err.Error(),
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
		}

		return ctx.Status(status).JSON(fiber.Map{"message": err.Error()})
	}
}
