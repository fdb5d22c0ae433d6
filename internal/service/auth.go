package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skomarov/eshop/internal/models"
	"github.com/skomarov/eshop/internal/repo"
	"github.com/skomarov/eshop/internal/transport"
	"github.com/skomarov/eshop/pkg/hash"
	"github.com/skomarov/eshop/pkg/logging"
	"github.com/skomarov/eshop/pkg/tokens"
)

const accessTokenTTL = time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	role := req.Role
	if role != "admin" {
		role = "customer"
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: pwHash,
		Phone:        req.Phone,
		Role:         role,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email is already registered", ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and issues a signed access token carrying the
// user id and role. Bad email and bad password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := tokens.NewAccessToken(user.ID.String(), user.Role, accessTokenTTL, s.JWTSecret)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &transport.LoginResponse{Token: token, UserID: user.ID}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return err
}
