package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/domain/recipe"
)

const recipeListTTL = 5 * time.Minute

// RecipeCache caches per-user recipe lists in Redis. Every operation is
// best effort: a miss or a Redis error just sends the caller to the
// database.
type RecipeCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRecipeCache creates a recipe list cache on the shared Redis client.
func NewRecipeCache(client *redis.Client, logger *zap.Logger) *RecipeCache {
	return &RecipeCache{
		client: client,
		logger: logger.Named("recipe-cache"),
	}
}

// GetList returns the cached recipe list for a user, or (nil, false).
func (c *RecipeCache) GetList(ctx context.Context, userID string) ([]*recipe.Recipe, bool) {
	data, err := c.client.Get(ctx, listKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var recipes []*recipe.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.String("user_id", userID), zap.Error(err))
		c.client.Del(ctx, listKey(userID))
		return nil, false
	}
	return recipes, true
}

// SetList stores a user's recipe list.
func (c *RecipeCache) SetList(ctx context.Context, userID string, recipes []*recipe.Recipe) {
	data, err := json.Marshal(recipes)
	if err != nil {
		c.logger.Warn("Failed to encode recipe list for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listKey(userID), data, recipeListTTL).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.Error(err))
	}
}

// Invalidate drops a user's cached list after a mutation.
func (c *RecipeCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, listKey(userID)).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
}

func listKey(userID string) string {
	return fmt.Sprintf("recipes:list:%s", userID)
}
