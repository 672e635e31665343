// Package cache is a Redis read-through cache for the public post
// listing, the only anonymous high-traffic read path. Cache failures
// degrade to the store: a dead Redis never fails a request.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "inkwell/internal/platform/redis"
	"inkwell/internal/post/models"
)

const listKey = "inkwell:public_posts"

// PublicCache caches the published-post listing.
type PublicCache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *PublicCache {
	return &PublicCache{client: client, ttl: ttl, logger: logger}
}

// GetList returns the cached listing and whether it was present.
func (c *PublicCache) GetList(ctx context.Context) ([]*models.Post, bool) {
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		return nil, false
	}
	var posts []*models.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		c.logger.WarnContext(ctx, "public cache payload corrupt, dropping", "error", err)
		_ = c.client.Del(ctx, listKey).Err()
		return nil, false
	}
	return posts, true
}

// SetList stores the listing with the configured TTL. Best-effort.
func (c *PublicCache) SetList(ctx context.Context, posts []*models.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "public cache write failed", "error", err)
	}
}

// Invalidate drops the cached listing after any post mutation.
func (c *PublicCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "public cache invalidation failed", "error", err)
	}
}
