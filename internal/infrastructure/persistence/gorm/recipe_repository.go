package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/recipesai/recipesai/internal/domain/recipe"
	"github.com/recipesai/recipesai/internal/ports/outbound"
)

// RecipeRepository implements outbound.RecipeRepository using GORM.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists a new recipe.
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Create(recipeToModel(rec)).Error
}

// Update saves all fields of an existing recipe.
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	result := r.db.WithContext(ctx).Save(recipeToModel(rec))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Delete removes a recipe by ID.
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// FindByID returns a recipe by ID, or outbound.ErrNotFound.
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return modelToRecipe(&model), nil
}

// FindByUserID returns all recipes owned by the given user, newest first.
func (r *RecipeRepository) FindByUserID(ctx context.Context, userID string) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = modelToRecipe(&models[i])
	}
	return recipes, nil
}
