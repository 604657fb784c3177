package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/services"
)

// User administration, super-only (enforced by SuperMiddleware on the group).

func ListUsersHandler(c *fiber.Ctx) error {
	users, err := services.ListUsers()
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, users)
}

func CreateUserHandler(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	user, err := services.CreateUser(input)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, user)
}

func UpdateUserHandler(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}
	user, err := services.UpdateUser(c.Params("id"), input)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, user)
}

// MembersHandler is the read-only active-member view, open to any
// authenticated actor.
func MembersHandler(c *fiber.Ctx) error {
	members, err := services.ListActiveMembers()
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, members)
}
