// Package ai provides the application layer for AI-assisted suggestions.
package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/ports/outbound"
	apperrors "github.com/recipesai/recipesai/pkg/errors"
)

const (
	suggestMaxTokens  = 500
	mealPlanMaxTokens = 700
)

// Service builds prompts for recipe suggestions and meal plans and relays
// the model's text response.
type Service struct {
	completer outbound.ChatCompleter
	logger    *zap.Logger
}

// NewService creates a new AI service.
func NewService(completer outbound.ChatCompleter, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		logger:    logger.Named("ai-service"),
	}
}

// Suggest returns three meal ideas built from the given ingredients.
func (s *Service) Suggest(ctx context.Context, ingredients []string) (string, error) {
	prompt := fmt.Sprintf(`You are a recipe assistant. Suggest 3 meal ideas using these ingredients: %s.
For each recipe, return:
- title
- short description
- list of ingredients
- estimated cooking time`, strings.Join(ingredients, ", "))

	text, err := s.completer.Complete(ctx, prompt, suggestMaxTokens)
	if err != nil {
		s.logger.Error("Suggestion generation failed", zap.Error(err))
		return "", apperrors.New(apperrors.CodeAIUnavailable, "Failed to generate suggestions").WithCause(err)
	}
	return text, nil
}

// MealPlan returns a day-by-day meal plan honoring optional preferences.
func (s *Service) MealPlan(ctx context.Context, days int, preferences string) (string, error) {
	if preferences == "" {
		preferences = "none"
	}
	prompt := fmt.Sprintf(`Create a %d-day meal plan.
Preferences: %s.
Format each day with:
- Breakfast
- Lunch
- Dinner
- Short snack suggestion`, days, preferences)

	text, err := s.completer.Complete(ctx, prompt, mealPlanMaxTokens)
	if err != nil {
		s.logger.Error("Meal plan generation failed", zap.Error(err))
		return "", apperrors.New(apperrors.CodeAIUnavailable, "Failed to generate meal plan").WithCause(err)
	}
	return text, nil
}
