// Package gorm provides GORM models and repository implementations.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipesai/recipesai/internal/domain/recipe"
	"github.com/recipesai/recipesai/internal/domain/user"
)

// UserModel is the GORM model for users.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// RecipeModel is the GORM model for recipes. Ingredients and steps are
// stored as JSON columns.
type RecipeModel struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null;index"`
	Description string         `gorm:"type:text;not null"`
	Ingredients IngredientList `gorm:"type:json"`
	Steps       StringSlice    `gorm:"type:json"`
	ImageURL    string         `gorm:"type:text"`
	UserID      string         `gorm:"type:char(36);not null;index"`
	Username    string         `gorm:"type:varchar(100)"`
	CreatedAt   time.Time      `gorm:"index"`
	UpdatedAt   time.Time
}

func (UserModel) TableName() string   { return "users" }
func (RecipeModel) TableName() string { return "recipes" }

// BeforeCreate assigns an ID when none is set.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// StringSlice stores a []string as JSON.
type StringSlice []string

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// IngredientList stores recipe ingredients as JSON.
type IngredientList []recipe.Ingredient

func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Mapping between GORM models and domain entities.

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func modelToUser(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: IngredientList(r.Ingredients),
		Steps:       StringSlice(r.Steps),
		ImageURL:    r.ImageURL,
		UserID:      r.UserID,
		Username:    r.Username,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func modelToRecipe(m *RecipeModel) *recipe.Recipe {
	return &recipe.Recipe{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Ingredients: []recipe.Ingredient(m.Ingredients),
		Steps:       []string(m.Steps),
		ImageURL:    m.ImageURL,
		UserID:      m.UserID,
		Username:    m.Username,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
