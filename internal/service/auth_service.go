package service

import (
	"errors"
	"fmt"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"
	"go-kasir-pos/pkg/jwt"
	"go-kasir-pos/pkg/validator"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(req *RegisterRequest) (*model.UserResponse, error)
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a cashier account. The role is always KASIR; admins are
// promoted out of band (see cmd/reset-password for the bundled tooling).
func (s *authService) Register(req *RegisterRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Message(errs[0]))
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.RoleKasir,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !user.CheckPassword(password) {
		return nil, ErrWrongPassword
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	resp := user.ToResponse()
	return &resp, nil
}
