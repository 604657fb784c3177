package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. A manager is scoped to its assigned months; super manages
// everything including other users.
const (
	RoleGeneral = "general"
	RoleManager = "manager"
	RoleSuper   = "super"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Password       string             `bson:"password,omitempty" json:"-"`
	Role           string             `bson:"role" json:"role"`
	AssignedMonths []string           `bson:"assigned_months,omitempty" json:"assignedMonths,omitempty"`
	Active         bool               `bson:"active" json:"active"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleGeneral || role == RoleManager || role == RoleSuper
}
