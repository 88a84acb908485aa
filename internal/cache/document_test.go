package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*DocumentCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDocumentCache(client, DefaultTTL, zap.NewNop()), mr
}

func sampleDocument() domain.SerializedDocument {
	doc := domain.NewDocument("report.pdf", "pdf", "uploads/report.pdf", uuid.New())
	return doc.Serialize()
}

func TestCacheSetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	doc := sampleDocument()
	id := uuid.MustParse(doc.ID)

	_, ok := c.Get(ctx, id)
	assert.False(t, ok)

	c.Set(ctx, doc)

	got, ok := c.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.FileName, got.FileName)
	assert.Equal(t, doc.FilePath, got.FilePath)
	assert.Equal(t, doc.UserID, got.UserID)
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	doc := sampleDocument()
	id := uuid.MustParse(doc.ID)

	c.Set(ctx, doc)
	c.Invalidate(ctx, id)

	_, ok := c.Get(ctx, id)
	assert.False(t, ok)
}

func TestCacheEntryExpires(t *testing.T) {
	mrBacked, mr := newTestCache(t)
	ctx := context.Background()
	doc := sampleDocument()
	id := uuid.MustParse(doc.ID)

	mrBacked.Set(ctx, doc)
	mr.FastForward(DefaultTTL + time.Second)

	_, ok := mrBacked.Get(ctx, id)
	assert.False(t, ok)
}

func TestCacheCorruptEntryIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, mr.Set("document:"+id.String(), "not-json"))

	_, ok := c.Get(ctx, id)
	assert.False(t, ok)
	assert.False(t, mr.Exists("document:"+id.String()))
}

func TestCacheSurvivesRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	doc := sampleDocument()

	mr.Close()

	// Every operation degrades to a miss, none panics or errors out.
	c.Set(ctx, doc)
	_, ok := c.Get(ctx, uuid.MustParse(doc.ID))
	assert.False(t, ok)
	c.Invalidate(ctx, uuid.MustParse(doc.ID))
}
