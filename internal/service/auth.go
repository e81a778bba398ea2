package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/hash"
	"github.com/ikhfad/sporton-backend/internal/models"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// SignIn checks the admin credentials and issues a bearer token carrying
// {sub, email}. A missing user and a wrong password both collapse into
// ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, req transport.SignInRequest) (string, *models.User, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

// InitiateAdmin creates the one and only admin user. A second call fails
// with ErrConflict; removing the existing user is a manual operation.
func (s *AuthService) InitiateAdmin(ctx context.Context, req transport.InitiateAdminRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := s.Repo.CreateFirstUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: an admin user already exists", ErrConflict)
		}
		return nil, err
	}

	return user, nil
}
