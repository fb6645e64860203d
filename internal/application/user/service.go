// Package user provides the application layer for account management.
package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/domain/user"
	"github.com/recipesai/recipesai/internal/infrastructure/security"
	"github.com/recipesai/recipesai/internal/ports/outbound"
	apperrors "github.com/recipesai/recipesai/pkg/errors"
)

// UserService implements registration and login use cases.
type UserService struct {
	userRepo outbound.UserRepository
	auth     *security.AuthService
	logger   *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo outbound.UserRepository, auth *security.AuthService, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		logger:   logger.Named("user-service"),
	}
}

// RegisterCommand contains registration data. The json keys follow the wire
// contract, where the password field is named "pass".
type RegisterCommand struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Pass     string `json:"pass" validate:"required,min=8"`
}

// LoginCommand contains login data.
type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Pass     string `json:"pass" validate:"required"`
}

// Register creates a new account. Username and email must both be unused.
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) error {
	s.logger.Info("Registering new user", zap.String("username", cmd.Username))

	if _, err := s.userRepo.FindByUsername(ctx, cmd.Username); err == nil {
		return apperrors.NewUserAlreadyExists("username")
	} else if !errors.Is(err, outbound.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, cmd.Email); err == nil {
		return apperrors.NewUserAlreadyExists("email")
	} else if !errors.Is(err, outbound.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.auth.HashPassword(cmd.Pass)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.New(cmd.Username, cmd.Email, hash)
	if err != nil {
		return apperrors.NewBadRequest(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, cmd LoginCommand) (string, error) {
	u, err := s.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return "", apperrors.NewInvalidCredentials()
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.auth.VerifyPassword(u.PasswordHash, cmd.Pass); err != nil {
		return "", apperrors.NewInvalidCredentials()
	}

	token, err := s.auth.GenerateToken(u.ID.String(), u.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", u.ID.String()))
	return token, nil
}
