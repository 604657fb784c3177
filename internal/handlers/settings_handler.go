package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/month"
	"messbook/internal/services"
)

func GetSettingsHandler(c *fiber.Ctx) error {
	settings, err := services.GetSettings()
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, settings)
}

// UpdateSettingsHandler moves the current month. Gated like a ledger write:
// the actor must be able to manage the month it is switching to.
func UpdateSettingsHandler(c *fiber.Ctx) error {
	var request struct {
		CurrentMonth string `json:"currentMonth"`
	}
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	if !month.Valid(request.CurrentMonth) {
		return Fail(c, apperr.Invalid("currentMonth must be a YYYY-MM key"))
	}
	if err := requireMonthAccess(c, request.CurrentMonth); err != nil {
		return Fail(c, err)
	}

	settings, err := services.UpdateSettings(request.CurrentMonth)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, settings)
}
