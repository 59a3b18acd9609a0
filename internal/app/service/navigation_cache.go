package service

import (
	"context"
	"time"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	redispkg "github.com/ikkim/storefront-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
)

const rootCategoriesKey = "storefront:nav:root_categories"

// NavigationCache holds the root categories rendered in every page header.
type NavigationCache interface {
	GetRoots(ctx context.Context) ([]model.Category, bool)
	SetRoots(ctx context.Context, roots []model.Category)
	// InvalidateRoots drops the cached roots so the next read goes to the database.
	InvalidateRoots(ctx context.Context)
}

type redisNavigationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisNavigationCache(client *redis.Client, ttl time.Duration) NavigationCache {
	return &redisNavigationCache{client: client, ttl: ttl}
}

func (c *redisNavigationCache) GetRoots(ctx context.Context) ([]model.Category, bool) {
	var roots []model.Category
	found, err := redispkg.GetJSON(ctx, c.client, rootCategoriesKey, &roots)
	if err != nil {
		logger.Warn("Navigation cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	return roots, found
}

func (c *redisNavigationCache) SetRoots(ctx context.Context, roots []model.Category) {
	if err := redispkg.SetJSON(ctx, c.client, rootCategoriesKey, roots, c.ttl); err != nil {
		logger.Warn("Navigation cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *redisNavigationCache) InvalidateRoots(ctx context.Context) {
	if err := c.client.Del(ctx, rootCategoriesKey).Err(); err != nil {
		logger.Warn("Navigation cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	logger.Debug("Navigation cache invalidated", map[string]interface{}{
		"key": rootCategoriesKey,
	})
}

type noopNavigationCache struct{}

// NewNoopNavigationCache always misses.
func NewNoopNavigationCache() NavigationCache {
	return noopNavigationCache{}
}

func (noopNavigationCache) GetRoots(context.Context) ([]model.Category, bool) { return nil, false }
func (noopNavigationCache) SetRoots(context.Context, []model.Category) {}
func (noopNavigationCache) InvalidateRoots(context.Context) {}
