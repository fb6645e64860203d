// Package cache provides the Redis connection and the recipe list cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/infrastructure/config"
)

// NewRedisClient connects to Redis. The connection is verified once at
// startup; a failed ping is logged but not fatal, because both token
// tracking and recipe caching degrade gracefully without Redis.
func NewRedisClient(cfg *config.Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, running without token tracking and caching",
			zap.String("addr", client.Options().Addr),
			zap.Error(err),
		)
	} else {
		logger.Info("Connected to Redis", zap.String("addr", client.Options().Addr))
	}

	return client
}
