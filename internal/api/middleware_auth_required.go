package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired authenticates the bearer token and loads its user into the
// request context. A token for a since-deleted account is rejected the
// same way as a bad token; possession of an old token proves nothing once
// the account is gone.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw, err := bearerToken(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "access token required")
	}

	userID, err := handler.parseToken(raw)
	if err != nil {
		if errors.Is(err, errTokenExpired) {
			return apiError(c, fiber.StatusUnauthorized, "token expired")
		}
		return apiError(c, fiber.StatusUnauthorized, "invalid token")
	}

	user, err := handler.auth.FindByID(userID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "user no longer exists")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
