package handlers

import (
	"github.com/gofiber/fiber/v2"

	"messbook/internal/apperr"
	"messbook/internal/permissions"
	"messbook/internal/services"
)

// AuthHandler multiplexes login, signup and logout on a single endpoint.
func AuthHandler(c *fiber.Ctx) error {
	var request struct {
		Action   string `json:"action"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}

	switch request.Action {
	case "signup":
		user, err := services.Signup(request.Name, request.Phone, request.Password)
		if err != nil {
			return Fail(c, err)
		}
		return OK(c, fiber.Map{"user": user})
	case "login":
		token, user, err := services.Login(request.Phone, request.Password)
		if err != nil {
			return Fail(c, err)
		}
		return OK(c, fiber.Map{"token": token, "user": user})
	case "logout":
		// Sessions are stateless tokens; the client discards its copy.
		return OK(c, nil)
	default:
		return Fail(c, apperr.Invalid("unknown action: "+request.Action))
	}
}

// MeHandler returns the current actor and its computed permissions for a
// month (the current month unless ?month= says otherwise).
func MeHandler(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return Fail(c, err)
	}

	monthKey, err := resolveMonth(c)
	if err != nil {
		return Fail(c, err)
	}

	return OK(c, fiber.Map{
		"user":  user,
		"month": monthKey,
		"permissions": fiber.Map{
			"canManageMonth":   permissions.CanManageMonth(user, monthKey),
			"canManageMembers": permissions.CanManageMembers(user),
		},
	})
}

// ChangePasswordHandler rotates the actor's password after verifying the
// current one.
func ChangePasswordHandler(c *fiber.Ctx) error {
	var request struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&request); err != nil {
		return Fail(c, apperr.Invalid("invalid request body"))
	}

	userID, _ := c.Locals("user_id").(string)
	if err := services.ChangePassword(userID, request.CurrentPassword, request.NewPassword); err != nil {
		return Fail(c, err)
	}
	return OK(c, nil)
}
