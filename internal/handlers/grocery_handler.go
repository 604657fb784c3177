package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/models"
	"messbook/internal/month"
	"messbook/internal/services"
)

type groceryRequest struct {
	Date        string  `json:"date"`
	DoneBy      string  `json:"doneBy"`
	AddedBy     string  `json:"addedBy"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Note        string  `json:"note"`
}

func (r groceryRequest) toModel() (models.Grocery, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.Grocery{}, err
	}
	doneBy, err := parseOptionalID(r.DoneBy, "doneBy")
	if err != nil {
		return models.Grocery{}, err
	}
	addedBy, err := parseOptionalID(r.AddedBy, "addedBy")
	if err != nil {
		return models.Grocery{}, err
	}
	return models.Grocery{
		Date:        date,
		DoneBy:      doneBy,
		AddedBy:     addedBy,
		Description: r.Description,
		Amount:      r.Amount,
		Note:        r.Note,
	}, nil
}

func ListGroceriesHandler(c *fiber.Ctx) error {
	groceries, err := services.ListGroceries(c.Query("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, groceries)
}

func CreateGroceryHandler(c *fiber.Ctx) error {
	var request groceryRequest
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	g, err := request.toModel()
	if err != nil {
		return Fail(c, err)
	}
	if g.Date.IsZero() {
		return Fail(c, apperr.Invalid("date is required"))
	}
	if err := requireMonthAccess(c, month.FromDate(g.Date)); err != nil {
		return Fail(c, err)
	}

	created, err := services.CreateGrocery(g)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, created)
}

func UpdateGroceryHandler(c *fiber.Ctx) error {
	var request groceryRequest
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	g, err := request.toModel()
	if err != nil {
		return Fail(c, err)
	}

	existing, err := services.GetGrocery(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := checkMoveAccess(c, existing.Month, existing.Date, g.Date); err != nil {
		return Fail(c, err)
	}

	updated, err := services.UpdateGrocery(c.Params("id"), g)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, updated)
}

func DeleteGroceryHandler(c *fiber.Ctx) error {
	existing, err := services.GetGrocery(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := requireMonthAccess(c, existing.Month); err != nil {
		return Fail(c, err)
	}
	if err := services.DeleteGrocery(c.Params("id")); err != nil {
		return Fail(c, err)
	}
	return OK(c, nil)
}

// checkMoveAccess gates an update: permission is re-checked against the new
// effective month, and against the record's old month when the date change
// moves the row across months.
func checkMoveAccess(c *fiber.Ctx, oldMonth string, oldDate, newDate time.Time) error {
	effective := oldDate
	if !newDate.IsZero() {
		effective = newDate
	}
	newMonth := month.FromDate(effective)
	if err := requireMonthAccess(c, newMonth); err != nil {
		return err
	}
	if newMonth != oldMonth {
		return requireMonthAccess(c, oldMonth)
	}
	return nil
}
