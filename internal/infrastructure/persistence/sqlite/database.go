// Package sqlite provides SQLite database setup for development and tests.
package sqlite

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormmodels "github.com/recipesai/recipesai/internal/infrastructure/persistence/gorm"
)

// Setup opens the SQLite database and runs migrations. An empty path opens
// an in-memory database.
func Setup(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	inMemory := dbPath == "" || dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
	if dbPath == "" || dbPath == ":memory:" {
		dbPath = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database lives only as long as its connection, so the
	// pool must never cycle it out.
	if inMemory {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
			sqlDB.SetMaxIdleConns(1)
			sqlDB.SetConnMaxLifetime(0)
		}
	}

	if err := db.AutoMigrate(&gormmodels.UserModel{}, &gormmodels.RecipeModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Seed inserts a demo account with a couple of recipes. No-op when users
// already exist.
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&gormmodels.UserModel{}).Count(&count)
	if count > 0 {
		return nil
	}

	demo := gormmodels.UserModel{
		Username: "demo",
		Email:    "demo@recipesai.dev",
		// "password"
		PasswordHash: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
	}
	if err := db.Create(&demo).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	recipes := []gormmodels.RecipeModel{
		{
			Title:       "Tomato Soup",
			Description: "A quick blended tomato soup",
			Ingredients: gormmodels.IngredientList{{Name: "Tomato", Quantity: "6"}, {Name: "Olive oil"}},
			Steps:       gormmodels.StringSlice{"Blend the tomatoes", "Heat with olive oil", "Season and serve"},
			UserID:      demo.ID.String(),
			Username:    demo.Username,
		},
		{
			Title:       "Garlic Pasta",
			Description: "Pasta with garlic and parsley",
			Ingredients: gormmodels.IngredientList{{Name: "Spaghetti", Quantity: "200g"}, {Name: "Garlic", Quantity: "3 cloves"}},
			Steps:       gormmodels.StringSlice{"Boil the pasta", "Fry the garlic", "Toss together"},
			UserID:      demo.ID.String(),
			Username:    demo.Username,
		},
	}
	for _, r := range recipes {
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("failed to seed recipe: %w", err)
		}
	}

	return nil
}
