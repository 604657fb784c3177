package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword("secret123", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateJWT(t *testing.T) {
	tokenString, err := GenerateJWT("abc123", "manager")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token failed to parse: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if claims["user_id"] != "abc123" {
		t.Errorf("user_id claim = %v, want abc123", claims["user_id"])
	}
	if claims["role"] != "manager" {
		t.Errorf("role claim = %v, want manager", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token has no expiry")
	}
}
