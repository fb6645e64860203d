// Package container wires the API server dependencies with Uber FX.
package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	aiapp "github.com/recipesai/recipesai/internal/application/ai"
	recipeapp "github.com/recipesai/recipesai/internal/application/recipe"
	userapp "github.com/recipesai/recipesai/internal/application/user"
	"github.com/recipesai/recipesai/internal/infrastructure/ai/openai"
	"github.com/recipesai/recipesai/internal/infrastructure/cache"
	"github.com/recipesai/recipesai/internal/infrastructure/config"
	"github.com/recipesai/recipesai/internal/infrastructure/http/apiserver"
	"github.com/recipesai/recipesai/internal/infrastructure/http/handlers"
	"github.com/recipesai/recipesai/internal/infrastructure/monitoring"
	gormrepo "github.com/recipesai/recipesai/internal/infrastructure/persistence/gorm"
	"github.com/recipesai/recipesai/internal/infrastructure/persistence/postgres"
	"github.com/recipesai/recipesai/internal/infrastructure/persistence/sqlite"
	"github.com/recipesai/recipesai/internal/infrastructure/security"
	"github.com/recipesai/recipesai/internal/ports/outbound"
	"github.com/recipesai/recipesai/pkg/logger"
)

// Module assembles every dependency of the API server.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule loads configuration from file and environment.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule builds the zap logger from app settings.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: !cfg.IsProduction(),
		})
	},
)

// DatabaseModule opens the GORM connection for the configured driver.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		gormLevel := gormlogger.Silent
		if !cfg.IsProduction() {
			gormLevel = gormlogger.Warn
		}

		var (
			db  *gorm.DB
			err error
		)
		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgres.Setup(cfg.Database, gormLevel)
		default:
			db, err = sqlite.Setup(cfg.Database.Path, gormLevel)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.Seed(db); err != nil {
				log.Warn("Failed to seed demo data", zap.Error(err))
			}
		}

		log.Info("Database ready", zap.String("driver", cfg.Database.Driver))
		return db, nil
	},
)

// CacheModule provides the shared Redis client and the recipe list cache.
var CacheModule = fx.Provide(
	cache.NewRedisClient,
	func(client *redis.Client, log *zap.Logger) outbound.RecipeListCache {
		return cache.NewRecipeCache(client, log)
	},
)

// RepositoryModule provides the GORM-backed repositories.
var RepositoryModule = fx.Provide(
	gormrepo.NewUserRepository,
	gormrepo.NewRecipeRepository,
)

// ServiceModule provides the application services.
var ServiceModule = fx.Provide(
	security.NewAuthService,
	openai.NewClient,
	userapp.NewUserService,
	recipeapp.NewService,
	aiapp.NewService,
)

// HTTPModule provides metrics, handlers and the server.
var HTTPModule = fx.Provide(
	monitoring.NewMetrics,
	handlers.NewAuthAPIHandlers,
	handlers.NewRecipeAPIHandlers,
	handlers.NewAIAPIHandlers,
	apiserver.NewServer,
)

// LifecycleModule starts and stops the HTTP server with the FX app.
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, server *apiserver.Server, redisClient *redis.Client, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.Start(); err != nil {
						log.Error("Server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				return redisClient.Close()
			},
		})
	},
)
