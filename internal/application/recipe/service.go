// Package recipe provides the application layer for recipe management.
package recipe

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/domain/recipe"
	"github.com/recipesai/recipesai/internal/ports/outbound"
	apperrors "github.com/recipesai/recipesai/pkg/errors"
)

// Service implements recipe use cases. Every mutation checks ownership
// before touching the row.
type Service struct {
	repo   outbound.RecipeRepository
	cache  outbound.RecipeListCache
	logger *zap.Logger
}

// NewService creates a new recipe service. The cache may be nil, in which
// case every list goes to the repository.
func NewService(repo outbound.RecipeRepository, cache outbound.RecipeListCache, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("recipe-service"),
	}
}

// Command carries the fields of a create or update request.
type Command struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Ingredients []recipe.Ingredient `json:"ingredients"`
	Steps       []string            `json:"steps" validate:"required,min=1"`
	ImageURL    string              `json:"imageUrl,omitempty"`
}

// List returns all recipes owned by the user, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*recipe.Recipe, error) {
	if s.cache != nil {
		if recipes, ok := s.cache.GetList(ctx, userID); ok {
			return recipes, nil
		}
	}

	recipes, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	if s.cache != nil {
		s.cache.SetList(ctx, userID, recipes)
	}
	return recipes, nil
}

// Create stores a new recipe owned by the given user.
func (s *Service) Create(ctx context.Context, userID, username string, cmd Command) (*recipe.Recipe, error) {
	r, err := recipe.New(userID, username, cmd.Title, cmd.Description, cmd.Ingredients, cmd.Steps)
	if err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}
	r.ImageURL = cmd.ImageURL

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	s.invalidate(ctx, userID)

	s.logger.Info("Recipe created",
		zap.String("recipe_id", r.ID.String()),
		zap.String("user_id", userID),
	)
	return r, nil
}

// Update modifies a recipe after verifying ownership.
func (s *Service) Update(ctx context.Context, userID, recipeID string, cmd Command) error {
	r, err := s.load(ctx, userID, recipeID)
	if err != nil {
		return err
	}

	if err := r.Update(cmd.Title, cmd.Description, cmd.Ingredients, cmd.Steps); err != nil {
		return apperrors.NewBadRequest(err.Error())
	}
	if cmd.ImageURL != "" {
		r.ImageURL = cmd.ImageURL
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	s.invalidate(ctx, userID)

	s.logger.Info("Recipe updated", zap.String("recipe_id", recipeID))
	return nil
}

// Delete removes a recipe after verifying ownership.
func (s *Service) Delete(ctx context.Context, userID, recipeID string) error {
	if _, err := s.load(ctx, userID, recipeID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.invalidate(ctx, userID)

	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID))
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

// load fetches a recipe and enforces the ownership check shared by Update
// and Delete: 404 when missing, 403 when owned by someone else.
func (s *Service) load(ctx context.Context, userID, recipeID string) (*recipe.Recipe, error) {
	r, err := s.repo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewRecipeNotFound(recipeID)
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if !r.OwnedBy(userID) {
		s.logger.Warn("Ownership check failed",
			zap.String("recipe_id", recipeID),
			zap.String("user_id", userID),
		)
		return nil, apperrors.NewNotOwner()
	}
	return r, nil
}
