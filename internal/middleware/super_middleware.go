package middleware

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/permissions"
	"messbook/internal/services"
)

// Swappable in tests.
var fetchActor = services.GetUser

// SuperMiddleware ensures that only active super users reach
// user-administration routes. The actor is re-read from the store, like the
// month gate, so demotion or deactivation takes effect immediately rather
// than at token expiry. Must run after AuthMiddleware.
func SuperMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "not authenticated"})
	}
	actor, err := fetchActor(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "unknown user"})
	}
	if !permissions.CanManageMembers(actor) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "super access required"})
	}
	return c.Next()
}
