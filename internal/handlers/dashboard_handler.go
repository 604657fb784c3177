package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/month"
	"messbook/internal/services"
)

// resolveMonth picks the month lens for a read view: the ?month= query
// parameter when present, the household's current month otherwise.
func resolveMonth(c *fiber.Ctx) (string, error) {
	monthKey := c.Query("month")
	if monthKey == "" {
		settings, err := services.GetSettings()
		if err != nil {
			return "", err
		}
		return settings.CurrentMonth, nil
	}
	if !month.Valid(monthKey) {
		return "", apperr.Invalid("month must be a YYYY-MM key")
	}
	return monthKey, nil
}

// DashboardHandler serves the household summary for one month.
func DashboardHandler(c *fiber.Ctx) error {
	monthKey, err := resolveMonth(c)
	if err != nil {
		return Fail(c, err)
	}
	data, err := services.SummarizeMonth(monthKey)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, data)
}

// MemberProfileHandler serves one member's month in full.
func MemberProfileHandler(c *fiber.Ctx) error {
	monthKey, err := resolveMonth(c)
	if err != nil {
		return Fail(c, err)
	}
	profile, err := services.SummarizeMember(c.Params("memberId"), monthKey)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, profile)
}
