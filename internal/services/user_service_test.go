package services

import (
	"testing"

	"messbook/internal/models"
)

func TestValidateRoleAssignment(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		months  []string
		wantErr bool
	}{
		{"general without months", models.RoleGeneral, nil, false},
		{"super without months", models.RoleSuper, nil, false},
		{"manager with one month", models.RoleManager, []string{"2025-01"}, false},
		{"manager with several months", models.RoleManager, []string{"2025-01", "2025-02"}, false},
		{"manager without months", models.RoleManager, nil, true},
		{"manager with malformed month", models.RoleManager, []string{"2025-1"}, true},
		{"general with months", models.RoleGeneral, []string{"2025-01"}, true},
		{"unknown role", "owner", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRoleAssignment(tt.role, tt.months)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRoleAssignment(%q, %v) error = %v, wantErr %v", tt.role, tt.months, err, tt.wantErr)
			}
		})
	}
}

func TestDemotionAllowed(t *testing.T) {
	super := models.User{Role: models.RoleSuper, Active: true}
	general := models.User{Role: models.RoleGeneral, Active: true}

	if demotionAllowed(super, models.RoleGeneral, 1) {
		t.Error("demoting the only super must be refused")
	}
	if !demotionAllowed(super, models.RoleGeneral, 2) {
		t.Error("demoting one of two supers is fine")
	}
	if !demotionAllowed(super, models.RoleSuper, 1) {
		t.Error("keeping the super role is not a demotion")
	}
	if !demotionAllowed(general, models.RoleManager, 1) {
		t.Error("role changes on non-supers never hit the guard")
	}
}

func TestDeactivationAllowed(t *testing.T) {
	activeSuper := models.User{Role: models.RoleSuper, Active: true}
	inactiveSuper := models.User{Role: models.RoleSuper, Active: false}
	manager := models.User{Role: models.RoleManager, Active: true, AssignedMonths: []string{"2025-01"}}

	if deactivationAllowed(activeSuper, 1) {
		t.Error("deactivating the only active super must be refused")
	}
	if !deactivationAllowed(activeSuper, 2) {
		t.Error("deactivating one of two active supers is fine")
	}
	if !deactivationAllowed(inactiveSuper, 1) {
		t.Error("an already-inactive super never hits the guard")
	}
	if !deactivationAllowed(manager, 1) {
		t.Error("deactivating a manager never hits the guard")
	}
}

func TestRoleForSignup(t *testing.T) {
	if got := roleForSignup(0); got != models.RoleSuper {
		t.Errorf("first signup role = %q, want super", got)
	}
	if got := roleForSignup(1); got != models.RoleGeneral {
		t.Errorf("second signup role = %q, want general", got)
	}
	if got := roleForSignup(40); got != models.RoleGeneral {
		t.Errorf("later signup role = %q, want general", got)
	}
}
