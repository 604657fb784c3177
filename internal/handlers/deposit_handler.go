package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/models"
	"messbook/internal/month"
	"messbook/internal/services"
)

type depositRequest struct {
	Date     string  `json:"date"`
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
}

func (r depositRequest) toModel() (models.Deposit, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.Deposit{}, err
	}
	memberID, err := parseOptionalID(r.MemberID, "memberId")
	if err != nil {
		return models.Deposit{}, err
	}
	return models.Deposit{
		Date:     date,
		MemberID: memberID,
		Amount:   r.Amount,
	}, nil
}

func ListDepositsHandler(c *fiber.Ctx) error {
	deposits, err := services.ListDeposits(c.Query("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, deposits)
}

func CreateDepositHandler(c *fiber.Ctx) error {
	var request depositRequest
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	d, err := request.toModel()
	if err != nil {
		return Fail(c, err)
	}
	if d.Date.IsZero() {
		return Fail(c, apperr.Invalid("date is required"))
	}
	if err := requireMonthAccess(c, month.FromDate(d.Date)); err != nil {
		return Fail(c, err)
	}

	created, err := services.CreateDeposit(d)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, created)
}

func UpdateDepositHandler(c *fiber.Ctx) error {
	var request depositRequest
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	d, err := request.toModel()
	if err != nil {
		return Fail(c, err)
	}

	existing, err := services.GetDeposit(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := checkMoveAccess(c, existing.Month, existing.Date, d.Date); err != nil {
		return Fail(c, err)
	}

	updated, err := services.UpdateDeposit(c.Params("id"), d)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, updated)
}

func DeleteDepositHandler(c *fiber.Ctx) error {
	existing, err := services.GetDeposit(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	if err := requireMonthAccess(c, existing.Month); err != nil {
		return Fail(c, err)
	}
	if err := services.DeleteDeposit(c.Params("id")); err != nil {
		return Fail(c, err)
	}
	return OK(c, nil)
}
