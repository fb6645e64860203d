// Package outbound defines the interfaces the application layer requires
// from infrastructure.
package outbound

import (
	"context"
	"errors"

	"github.com/recipesai/recipesai/internal/domain/recipe"
	"github.com/recipesai/recipesai/internal/domain/user"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("record not found")

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// RecipeRepository persists recipes.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	FindByUserID(ctx context.Context, userID string) ([]*recipe.Recipe, error)
}

// RecipeListCache caches per-user recipe lists. Implementations are best
// effort and must never fail a request.
type RecipeListCache interface {
	GetList(ctx context.Context, userID string) ([]*recipe.Recipe, bool)
	SetList(ctx context.Context, userID string, recipes []*recipe.Recipe)
	Invalidate(ctx context.Context, userID string)
}

// ChatCompleter generates free-form text from a prompt. Implemented by the
// OpenAI-compatible client.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
