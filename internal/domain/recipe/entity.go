// Package recipe contains the recipe domain model.
package recipe

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrStepsRequired       = errors.New("at least one step is required")
	ErrIngredientName      = errors.New("ingredient name is required")
)

// Ingredient is a single recipe ingredient. Quantity is free text and
// optional.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

// Recipe is a user-owned recipe. UserID identifies the owner; Username is
// denormalized at creation time for display.
type Recipe struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	UserID      string       `json:"userID"`
	Username    string       `json:"username"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// New creates a recipe, validating the required fields.
func New(userID, username, title, description string, ingredients []Ingredient, steps []string) (*Recipe, error) {
	r := &Recipe{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.apply(title, description, ingredients, steps); err != nil {
		return nil, err
	}
	return r, nil
}

// Update applies new field values, revalidating and bumping UpdatedAt.
func (r *Recipe) Update(title, description string, ingredients []Ingredient, steps []string) error {
	if err := r.apply(title, description, ingredients, steps); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	return nil
}

// OwnedBy reports whether the recipe belongs to the given user.
func (r *Recipe) OwnedBy(userID string) bool {
	return r.UserID == userID
}

func (r *Recipe) apply(title, description string, ingredients []Ingredient, steps []string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	if len(steps) == 0 {
		return ErrStepsRequired
	}
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return ErrIngredientName
		}
	}
	r.Title = title
	r.Description = description
	r.Ingredients = ingredients
	r.Steps = steps
	return nil
}
