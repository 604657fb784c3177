package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"messbook/internal/apperr"
	"messbook/internal/db"
	"messbook/internal/models"
	"messbook/internal/month"
)

// UserInput is the writable surface of a user for admin create/update.
type UserInput struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	AssignedMonths []string `json:"assignedMonths"`
	Active         *bool    `json:"active"`
}

// validateRoleAssignment enforces the role/months invariant: a manager must
// carry at least one well-formed month key, the other roles carry none.
func validateRoleAssignment(role string, months []string) error {
	if !models.ValidRole(role) {
		return apperr.Invalid("unknown role: " + role)
	}
	if role == models.RoleManager {
		if len(months) == 0 {
			return apperr.Invalid("a manager must have at least one assigned month")
		}
		for _, m := range months {
			if !month.Valid(m) {
				return apperr.Invalid("invalid month key: " + m)
			}
		}
		return nil
	}
	if len(months) > 0 {
		return apperr.Invalid("only managers carry assigned months")
	}
	return nil
}

// demotionAllowed guards against removing the last super: the change is
// refused when the target is the only remaining active super.
func demotionAllowed(target models.User, newRole string, activeSupers int64) bool {
	if target.Role != models.RoleSuper || newRole == models.RoleSuper {
		return true
	}
	return activeSupers > 1
}

// deactivationAllowed applies the same last-super guard to the Active flag:
// deactivating the only remaining active super would strand the household
// with nobody able to administer it.
func deactivationAllowed(target models.User, activeSupers int64) bool {
	if target.Role != models.RoleSuper || !target.Active {
		return true
	}
	return activeSupers > 1
}

func countActiveSupers() (int64, error) {
	supers, err := db.GetCollection(db.UsersCollection).CountDocuments(
		context.TODO(), bson.M{"role": models.RoleSuper, "active": true})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return supers, nil
}

// GetUser fetches one user by hex id.
func GetUser(id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, apperr.Invalid("invalid user id")
	}

	var user models.User
	err = db.GetCollection(db.UsersCollection).FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// ListUsers returns every account, active or not, newest first.
func ListUsers() ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.GetCollection(db.UsersCollection).Find(context.TODO(), bson.M{}, opts)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cursor.Close(context.TODO())

	users := []models.User{}
	if err := cursor.All(context.TODO(), &users); err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// ListActiveMembers returns active accounts only, the read-only member view.
func ListActiveMembers() ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.GetCollection(db.UsersCollection).Find(context.TODO(), bson.M{"active": true}, opts)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cursor.Close(context.TODO())

	users := []models.User{}
	if err := cursor.All(context.TODO(), &users); err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// CreateUser adds a member on behalf of a super user.
func CreateUser(input UserInput) (models.User, error) {
	if input.Name == "" || input.Phone == "" {
		return models.User{}, apperr.Invalid("name and phone are required")
	}
	if len(input.Password) < 6 {
		return models.User{}, apperr.Invalid("password must be at least 6 characters")
	}
	role := input.Role
	if role == "" {
		role = models.RoleGeneral
	}
	if err := validateRoleAssignment(role, input.AssignedMonths); err != nil {
		return models.User{}, err
	}

	collection := db.GetCollection(db.UsersCollection)
	count, err := collection.CountDocuments(context.TODO(), bson.M{"phone": input.Phone})
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}
	if count > 0 {
		return models.User{}, apperr.Conflict("phone number already in use")
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	user := models.User{
		ID:             primitive.NewObjectID(),
		Name:           input.Name,
		Phone:          input.Phone,
		Password:       hashed,
		Role:           role,
		AssignedMonths: input.AssignedMonths,
		Active:         true,
		CreatedAt:      time.Now(),
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if _, err := collection.InsertOne(context.TODO(), user); err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// UpdateUser applies role, assignment, name and active-status changes.
// Accounts are never hard-deleted; deactivation goes through Active=false.
func UpdateUser(id string, input UserInput) (models.User, error) {
	target, err := GetUser(id)
	if err != nil {
		return models.User{}, err
	}

	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Phone != "" && input.Phone != target.Phone {
		count, err := db.GetCollection(db.UsersCollection).CountDocuments(context.TODO(), bson.M{"phone": input.Phone})
		if err != nil {
			return models.User{}, apperr.Internal(err)
		}
		if count > 0 {
			return models.User{}, apperr.Conflict("phone number already in use")
		}
		set["phone"] = input.Phone
	}
	if input.Active != nil {
		if !*input.Active && target.Active {
			supers, err := countActiveSupers()
			if err != nil {
				return models.User{}, err
			}
			if !deactivationAllowed(target, supers) {
				return models.User{}, apperr.Invalid("cannot deactivate the last super user")
			}
		}
		set["active"] = *input.Active
	}

	switch {
	case input.Role != "":
		if err := validateRoleAssignment(input.Role, input.AssignedMonths); err != nil {
			return models.User{}, err
		}
		supers, err := countActiveSupers()
		if err != nil {
			return models.User{}, err
		}
		if !demotionAllowed(target, input.Role, supers) {
			return models.User{}, apperr.Invalid("cannot demote the last super user")
		}
		set["role"] = input.Role
		if input.Role == models.RoleManager {
			set["assigned_months"] = input.AssignedMonths
		} else {
			set["assigned_months"] = nil
		}
	case len(input.AssignedMonths) > 0:
		// Month reassignment without a role change.
		if target.Role != models.RoleManager {
			return models.User{}, apperr.Invalid("only managers carry assigned months")
		}
		if err := validateRoleAssignment(models.RoleManager, input.AssignedMonths); err != nil {
			return models.User{}, err
		}
		set["assigned_months"] = input.AssignedMonths
	}

	if len(set) == 0 {
		return target, nil
	}

	_, err = db.GetCollection(db.UsersCollection).UpdateOne(
		context.TODO(), bson.M{"_id": target.ID}, bson.M{"$set": set})
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return GetUser(id)
}
