// Package rediscache adds a cache-aside layer in front of a mapping store.
// Redirects dominate the traffic of a link shortener, so resolved slugs are
// kept in Redis for a configurable TTL. The wrapped store stays the source
// of truth: cache failures are logged and ignored.
package rediscache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iVbk/khmerlink/internal/metrics"
	"github.com/iVbk/khmerlink/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is the subset of the mapping storage the cache delegates to.
type Store interface {
	Create(ctx context.Context, slug, destination string) error
	Resolve(ctx context.Context, slug models.Slug) (models.Destination, error)
	All(ctx context.Context) (models.MappingTable, error)
	Ping(ctx context.Context) error
}

// Cache wraps a mapping store with a Redis resolve cache.
type Cache struct {
	store  Store
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cache in front of the given store.
func New(store Store, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// key namespaces cached slugs, "slug:{slug}".
func key(slug models.Slug) string {
	return fmt.Sprintf("slug:%s", slug)
}

// Create delegates to the store and warms the cache on success.
func (c *Cache) Create(ctx context.Context, slug, destination string) error {
	if err := c.store.Create(ctx, slug, destination); err != nil {
		return err
	}

	// resolve through the store under the key it stored, i.e. trimmed
	key := models.Slug(strings.TrimSpace(slug))
	if destination, err := c.store.Resolve(ctx, key); err == nil {
		c.set(ctx, key, destination)
	}

	return nil
}

// Resolve checks Redis first and falls back to the store on a miss.
func (c *Cache) Resolve(ctx context.Context, slug models.Slug) (models.Destination, error) {
	cached, err := c.client.Get(ctx, key(slug)).Result()
	switch {
	case err == nil:
		metrics.CacheHits.Inc()
		return models.Destination(cached), nil
	case err != redis.Nil:
		c.logger.Warn("redis get failed", zap.Error(err))
	default:
		metrics.CacheMisses.Inc()
	}

	destination, err := c.store.Resolve(ctx, slug)
	if err != nil {
		return "", err
	}

	c.set(ctx, slug, destination)

	return destination, nil
}

// All bypasses the cache, the listing is not performance sensitive.
func (c *Cache) All(ctx context.Context) (models.MappingTable, error) {
	return c.store.All(ctx)
}

// Ping reports the health of the wrapped store.
func (c *Cache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *Cache) set(ctx context.Context, slug models.Slug, destination models.Destination) {
	if err := c.client.Set(ctx, key(slug), string(destination), c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.Error(err))
	}
}
