package service

import (
	"errors"
	"testing"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"
)

func TestRegisterDefaultsToKasir(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	user, err := svc.Register(&RegisterRequest{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != model.RoleKasir {
		t.Errorf("Expected role KASIR, got %q", user.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	req := &RegisterRequest{Name: "Budi", Email: "budi@example.com", Password: "secret123"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("Expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Register(&RegisterRequest{Name: "Budi", Email: "budi@example.com", Password: "123"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for short password, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	registered, err := svc.Register(&RegisterRequest{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login("budi@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected a token")
	}
	if resp.User.ID != registered.ID {
		t.Error("Expected login to return the registered user")
	}

	validated, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if validated.ID != registered.ID {
		t.Error("Expected token to resolve back to the same user")
	}
}

func TestLoginFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	if _, err := svc.Register(&RegisterRequest{
		Name: "Budi", Email: "budi@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Login("budi@example.com", "wrongpass"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("Expected ErrWrongPassword, got %v", err)
	}
}
