package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/month"
	"messbook/internal/services"
)

func ListMealsHandler(c *fiber.Ctx) error {
	meals, err := services.ListMeals(c.Query("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, meals)
}

// CreateMealsHandler takes one day's counts for several members at once and
// upserts each (day, member) pair independently.
func CreateMealsHandler(c *fiber.Ctx) error {
	var request struct {
		Date  string               `json:"date"`
		Meals []services.MealEntry `json:"meals"`
	}
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}

	date, err := parseDate(request.Date)
	if err != nil {
		return Fail(c, err)
	}
	if date.IsZero() {
		return Fail(c, apperr.Invalid("date is required"))
	}

	if err := requireMonthAccess(c, month.FromDate(date)); err != nil {
		return Fail(c, err)
	}
	if err := services.UpsertMeals(date, request.Meals); err != nil {
		return Fail(c, err)
	}
	return OK(c, nil)
}

func UpdateMealHandler(c *fiber.Ctx) error {
	var request struct {
		Date  string  `json:"date"`
		Count float64 `json:"count"`
	}
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}

	existing, err := services.GetMeal(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}

	date, err := parseDate(request.Date)
	if err != nil {
		return Fail(c, err)
	}
	effective := existing.Date
	if !date.IsZero() {
		effective = date
	}

	// Permission is checked against the new effective month, and against the
	// old one too when the row moves between months.
	if err := requireMonthAccess(c, month.FromDate(effective)); err != nil {
		return Fail(c, err)
	}
	if existing.Month != month.FromDate(effective) {
		if err := requireMonthAccess(c, existing.Month); err != nil {
			return Fail(c, err)
		}
	}

	meal, err := services.UpdateMeal(c.Params("id"), date, request.Count)
	if err != nil {
		return Fail(c, err)
	}
	if meal.ID.IsZero() {
		// Non-positive count removed the row.
		return OK(c, nil)
	}
	return OK(c, meal)
}

func DeleteMealHandler(c *fiber.Ctx) error {
	existing, err := services.GetMeal(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := requireMonthAccess(c, existing.Month); err != nil {
		return Fail(c, err)
	}
	if err := services.DeleteMeal(c.Params("id")); err != nil {
		return Fail(c, err)
	}
	return OK(c, nil)
}
