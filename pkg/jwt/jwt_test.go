package jwt

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "kasir@example.com", "Budi", "KASIR")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "kasir@example.com" || claims.Name != "Budi" || claims.Role != "KASIR" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("Expected expiry after issue time")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "kasir@example.com", "Budi", "KASIR")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Flip a character of the signature segment.
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken for tampered token, got %v", err)
	}
}
