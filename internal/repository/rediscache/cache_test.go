package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/iVbk/khmerlink/internal/models"
	"github.com/iVbk/khmerlink/internal/repository/memstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingStore wraps a store and records the slugs Resolve was called with.
type recordingStore struct {
	*memstore.MappingRepository
	resolved []models.Slug
}

func (r *recordingStore) Resolve(ctx context.Context, slug models.Slug) (models.Destination, error) {
	r.resolved = append(r.resolved, slug)
	return r.MappingRepository.Resolve(ctx, slug)
}

// unreachable redis: every cache operation fails, the store stays
// the source of truth.
func newBrokenCache(t *testing.T) (*Cache, *memstore.MappingRepository) {
	t.Helper()

	store := memstore.New()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	return New(store, client, time.Minute, zap.NewNop()), store
}

func TestCache_FallsBackToStore(t *testing.T) {
	cache, store := newBrokenCache(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "test", "https://example.org"))

	got, err := cache.Resolve(ctx, "test")
	require.NoError(t, err)
	assert.EqualValues(t, "https://example.org", got)
}

func TestCache_CreateDelegates(t *testing.T) {
	cache, store := newBrokenCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Create(ctx, "test", "https://example.org"))

	got, err := store.Resolve(ctx, "test")
	require.NoError(t, err)
	assert.EqualValues(t, "https://example.org", got)

	// duplicates surface the store error unchanged
	assert.Error(t, cache.Create(ctx, "test", "https://other.org"))
}

func TestCache_CreateWarmsWithTrimmedSlug(t *testing.T) {
	store := &recordingStore{MappingRepository: memstore.New()}
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	cache := New(store, client, time.Minute, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Create(ctx, "  padded  ", "https://example.org"))

	// the warm-up resolve must use the key the store trimmed to
	require.Len(t, store.resolved, 1)
	assert.Equal(t, models.Slug("padded"), store.resolved[0])
}

func TestCache_AllDelegates(t *testing.T) {
	cache, store := newBrokenCache(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "ផ្ទះ", "https://example.com/home"))

	table, err := cache.All(ctx)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.EqualValues(t, "https://example.com/home", table["ផ្ទះ"])
}
