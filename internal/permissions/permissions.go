// Package permissions decides whether an actor may write ledger data for a
// given month. Reads are never gated here.
package permissions

import (
	"slices"

	"messbook/internal/models"
)

// CanManageMonth reports whether actor may create, update or delete ledger
// rows whose effective month is monthKey. Supers manage every month,
// managers only their assigned months, everyone else nothing. Deactivated
// accounts manage nothing regardless of role.
func CanManageMonth(actor models.User, monthKey string) bool {
	if !actor.Active {
		return false
	}
	switch actor.Role {
	case models.RoleSuper:
		return true
	case models.RoleManager:
		return slices.Contains(actor.AssignedMonths, monthKey)
	}
	return false
}

// CanManageMembers reports whether actor may administer user accounts.
func CanManageMembers(actor models.User) bool {
	return actor.Active && actor.Role == models.RoleSuper
}
