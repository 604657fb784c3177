package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/services"
)

// ArchiveReportHandler freezes a month's summary into object storage.
// Super-only (enforced by SuperMiddleware on the group).
func ArchiveReportHandler(c *fiber.Ctx) error {
	name, err := services.ArchiveMonthReport(c.Params("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, fiber.Map{"object": name})
}
