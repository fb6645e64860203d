package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/recipesai/recipesai/internal/domain/user"
	"github.com/recipesai/recipesai/internal/ports/outbound"
)

// UserRepository implements outbound.UserRepository using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(userToModel(u)).Error
}

// FindByUsername returns the user with the given username, or
// outbound.ErrNotFound.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).First(&model, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return modelToUser(&model), nil
}

// FindByEmail returns the user with the given email, or outbound.ErrNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).First(&model, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return modelToUser(&model), nil
}
