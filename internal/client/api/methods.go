package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "pass": password}
	raw, err := c.Do(ctx, http.MethodPost, "/users/login", body)
	if err != nil {
		return "", err
	}

	var resp struct {
		Token string `json:"token" validate:"required"`
	}
	if err := decode(raw, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "pass": password}
	_, err := c.Do(ctx, http.MethodPost, "/users/register", body)
	return err
}

// ListRecipes fetches the authenticated user's recipes.
func (c *Client) ListRecipes(ctx context.Context, opts ...Option) ([]Recipe, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/recipes", nil, opts...)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Recipes []Recipe `json:"recipes"`
	}
	if raw == nil {
		return nil, fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	return resp.Recipes, nil
}

// CreateRecipe stores a new recipe and returns the server's copy.
func (c *Client) CreateRecipe(ctx context.Context, payload RecipePayload, opts ...Option) (*Recipe, error) {
	raw, err := c.Do(ctx, http.MethodPost, "/recipes", payload, opts...)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Recipe *Recipe `json:"recipe" validate:"required"`
	}
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	return resp.Recipe, nil
}

// UpdateRecipe modifies an existing recipe.
func (c *Client) UpdateRecipe(ctx context.Context, id string, payload RecipePayload, opts ...Option) error {
	_, err := c.Do(ctx, http.MethodPatch, "/recipes/"+id, payload, opts...)
	return err
}

// DeleteRecipe removes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id string, opts ...Option) error {
	_, err := c.Do(ctx, http.MethodDelete, "/recipes/"+id, nil, opts...)
	return err
}

// Suggest asks for meal ideas based on a list of ingredients.
func (c *Client) Suggest(ctx context.Context, ingredients []string, opts ...Option) (string, error) {
	body := map[string]interface{}{"ingredients": ingredients}
	raw, err := c.Do(ctx, http.MethodPost, "/ai/suggest", body, opts...)
	if err != nil {
		return "", err
	}

	var resp struct {
		Suggestions string `json:"suggestions" validate:"required"`
	}
	if err := decode(raw, &resp); err != nil {
		return "", err
	}
	return resp.Suggestions, nil
}

// MealPlan asks for a multi-day meal plan.
func (c *Client) MealPlan(ctx context.Context, days int, preferences string, opts ...Option) (string, error) {
	body := map[string]interface{}{"days": days}
	if preferences != "" {
		body["preferences"] = preferences
	}
	raw, err := c.Do(ctx, http.MethodPost, "/ai/meal-plan", body, opts...)
	if err != nil {
		return "", err
	}

	var resp struct {
		MealPlan string `json:"mealPlan" validate:"required"`
	}
	if err := decode(raw, &resp); err != nil {
		return "", err
	}
	return resp.MealPlan, nil
}

// decode unmarshals a response body and checks the required fields are
// present, so malformed server responses surface as errors instead of
// zero values.
func decode(raw json.RawMessage, out interface{}) error {
	if raw == nil {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}
