package serverutils

import (
	"strings"

	"notevault-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware guards protected routes. It extracts the bearer token,
// verifies it against the injected token service and attaches the caller's
// user id to the request locals. Expired and malformed tokens are not
// distinguished to the caller.
func NewAuthMiddleware(tokenService *token.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "not authorized, no token"})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokenService.Verify(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "not authorized, token failed"})
		}

		ctx.Locals("user_id", userID)
		return ctx.Next()
	}
}
