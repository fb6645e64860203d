// Package postgres provides PostgreSQL database setup for production.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipesai/recipesai/internal/infrastructure/config"
	gormmodels "github.com/recipesai/recipesai/internal/infrastructure/persistence/gorm"
)

// Setup opens the PostgreSQL database and runs migrations.
func Setup(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&gormmodels.UserModel{}, &gormmodels.RecipeModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
