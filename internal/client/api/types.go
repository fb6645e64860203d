package api

import "time"

// Ingredient mirrors the server's ingredient shape.
type Ingredient struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity,omitempty"`
}

// Recipe mirrors the server's recipe shape.
type Recipe struct {
	ID          string       `json:"id" validate:"required"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	UserID      string       `json:"userID"`
	Username    string       `json:"username"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// RecipePayload is the body of recipe create and update requests.
type RecipePayload struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	ImageURL    string       `json:"imageUrl,omitempty"`
}
