package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"messbook/internal/apperr"
	"messbook/internal/models"
	"messbook/internal/permissions"
	"messbook/internal/services"
)

// OK wraps data in the uniform response envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Fail maps any error to its HTTP status and the envelope. Internal errors
// are logged and surfaced as a generic message.
func Fail(c *fiber.Ctx, err error) error {
	code := apperr.StatusCode(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("request_id"),
			"error", err,
		)
		msg = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "error": msg})
}

// actor loads the authenticated user behind the request. Assigned months
// come from the store, not the token, so reassignment is effective
// immediately.
func actor(c *fiber.Ctx) (models.User, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return models.User{}, apperr.Unauthorized("not authenticated")
	}
	user, err := services.GetUser(userID)
	if err != nil {
		return models.User{}, apperr.Unauthorized("unknown user")
	}
	return user, nil
}

// requireMonthAccess gates a mutation on the permission evaluator. The check
// precedes any write, so a denial has no partial effects.
func requireMonthAccess(c *fiber.Ctx, monthKey string) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	if !permissions.CanManageMonth(user, monthKey) {
		return apperr.Forbidden("you cannot manage " + monthKey)
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates. An empty
// string parses to the zero time, which update paths read as "unchanged".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.Invalid("invalid date: " + s)
	}
	return t, nil
}

// parseOptionalID maps an empty string to the zero ObjectID.
func parseOptionalID(s, field string) (primitive.ObjectID, error) {
	if s == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("invalid " + field)
	}
	return id, nil
}
