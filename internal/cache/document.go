// Package cache provides a redis read-through cache for serialized
// documents. Cache misses and redis failures both fall back to the
// database; the cache never turns into a source of errors for callers.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL keeps entries short-lived; invalidation on update/delete
// handles the common case and the TTL bounds staleness after a missed
// invalidation.
const DefaultTTL = 5 * time.Minute

type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDocumentCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *DocumentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DocumentCache{client: client, ttl: ttl, logger: logger}
}

func key(id uuid.UUID) string {
	return "document:" + id.String()
}

func (c *DocumentCache) Get(ctx context.Context, id uuid.UUID) (domain.SerializedDocument, bool) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("document cache get failed", zap.Error(err))
		}
		return domain.SerializedDocument{}, false
	}

	var doc domain.SerializedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.logger.Warn("document cache entry corrupt", zap.Error(err))
		c.client.Del(ctx, key(id))
		return domain.SerializedDocument{}, false
	}
	return doc, true
}

func (c *DocumentCache) Set(ctx context.Context, doc domain.SerializedDocument) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(id), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("document cache set failed", zap.Error(err))
	}
}

func (c *DocumentCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.logger.Warn("document cache invalidate failed", zap.Error(err))
	}
}
