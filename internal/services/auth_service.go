package services

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"messbook/internal/apperr"
	"messbook/internal/db"
	"messbook/internal/models"
)

var jwtSecret = os.Getenv("JWT_SECRET")

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a session token carrying the user id and role.
// Assigned months are deliberately not embedded: they are re-read from the
// store at permission-check time so reassignment takes effect without
// re-login.
func GenerateJWT(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// roleForSignup: the first account in an empty household becomes super,
// everyone after that starts as general.
func roleForSignup(existingUsers int64) string {
	if existingUsers == 0 {
		return models.RoleSuper
	}
	return models.RoleGeneral
}

// Signup registers a new member. Phone numbers are globally unique.
func Signup(name, phone, password string) (models.User, error) {
	if name == "" || phone == "" {
		return models.User{}, apperr.Invalid("name and phone are required")
	}
	if len(password) < 6 {
		return models.User{}, apperr.Invalid("password must be at least 6 characters")
	}

	collection := db.GetCollection(db.UsersCollection)

	total, err := collection.CountDocuments(context.TODO(), bson.M{})
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	count, err := collection.CountDocuments(context.TODO(), bson.M{"phone": phone})
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}
	if count > 0 {
		return models.User{}, apperr.Conflict("phone number already in use")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Phone:     phone,
		Password:  hashed,
		Role:      roleForSignup(total),
		Active:    true,
		CreatedAt: time.Now(),
	}
	if _, err := collection.InsertOne(context.TODO(), user); err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// Login authenticates by phone and password and returns a session token.
func Login(phone, password string) (string, models.User, error) {
	collection := db.GetCollection(db.UsersCollection)

	var user models.User
	err := collection.FindOne(context.TODO(), bson.M{"phone": phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return "", models.User{}, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", models.User{}, apperr.Internal(err)
	}
	if !VerifyPassword(password, user.Password) {
		return "", models.User{}, apperr.Unauthorized("invalid credentials")
	}
	if !user.Active {
		return "", models.User{}, apperr.Unauthorized("account is deactivated")
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return "", models.User{}, apperr.Internal(err)
	}
	return token, user, nil
}

// ChangePassword verifies the current password before storing a new one.
func ChangePassword(userID, current, next string) error {
	if len(next) < 6 {
		return apperr.Invalid("new password must be at least 6 characters")
	}

	user, err := GetUser(userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, user.Password) {
		return apperr.Invalid("current password is incorrect")
	}

	hashed, err := HashPassword(next)
	if err != nil {
		return apperr.Internal(err)
	}

	collection := db.GetCollection(db.UsersCollection)
	_, err = collection.UpdateOne(
		context.TODO(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": hashed}},
	)
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
