package middleware

import (
	"errors"

	"skillforge/backend/config"
	"skillforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key under which AuthMiddleware stores the
// authenticated user's identifier.
const UserIDKey = "userID"

// AuthMiddleware enforces "Authorization: Bearer <token>". A missing
// header is 401; a present but invalid or expired token is 403.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParseBearerToken(c.Get("Authorization"), cfg)
		if err != nil {
			if errors.Is(err, utils.ErrMissingToken) {
				return utils.Unauthorized(c, "Access token required")
			}
			return utils.Forbidden(c, "Invalid token")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the identifier stored by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(UserIDKey).(uint)
	return id
}
