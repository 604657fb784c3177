package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"messbook/internal/apperr"
	"messbook/internal/models"
	"messbook/internal/month"
	"messbook/internal/services"
)

type expenseRequest struct {
	Date        string   `json:"date"`
	PaidBy      string   `json:"paidBy"`
	SplitAmong  []string `json:"splitAmong"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Note        string   `json:"note"`
}

func (r expenseRequest) toModel() (models.Expense, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.Expense{}, err
	}
	paidBy, err := parseOptionalID(r.PaidBy, "paidBy")
	if err != nil {
		return models.Expense{}, err
	}
	var split []primitive.ObjectID
	for _, s := range r.SplitAmong {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return models.Expense{}, apperr.Invalid("invalid splitAmong member id: " + s)
		}
		split = append(split, id)
	}
	return models.Expense{
		Date:        date,
		PaidBy:      paidBy,
		SplitAmong:  split,
		Description: r.Description,
		Amount:      r.Amount,
		Note:        r.Note,
	}, nil
}

func ListExpensesHandler(c *fiber.Ctx) error {
	expenses, err := services.ListExpenses(c.Query("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, expenses)
}

func CreateExpenseHandler(c *fiber.Ctx) error {
	var request expenseRequest
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	e, err := request.toModel()
	if err != nil {
		return Fail(c, err)
	}
	if e.Date.IsZero() {
		return Fail(c, apperr.Invalid("date is required"))
	}
	if err := requireMonthAccess(c, month.FromDate(e.Date)); err != nil {
		return Fail(c, err)
	}

	created, err := services.CreateExpense(e)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, created)
}

func UpdateExpenseHandler(c *fiber.Ctx) error {
	var request expenseRequest
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	e, err := request.toModel()
	if err != nil {
		return Fail(c, err)
	}

	existing, err := services.GetExpense(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := checkMoveAccess(c, existing.Month, existing.Date, e.Date); err != nil {
		return Fail(c, err)
	}

	updated, err := services.UpdateExpense(c.Params("id"), e)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, updated)
}

func DeleteExpenseHandler(c *fiber.Ctx) error {
	existing, err := services.GetExpense(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := requireMonthAccess(c, existing.Month); err != nil {
		return Fail(c, err)
	}
	if err := services.DeleteExpense(c.Params("id")); err != nil {
		return Fail(c, err)
	}
	return OK(c, nil)
}
