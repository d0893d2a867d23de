package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheRoundTrip(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, SetCache(ctx, rdb, "k", payload{Name: "widgets", Count: 3}, time.Minute))

	var got payload
	found, err := GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "widgets", Count: 3}, got)

	// A missing key reports not found without error
	found, err = GetCache(ctx, rdb, "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCachePrefix(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "products:page=1", "a", time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "products:page=2", "b", time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "admin:dashboard", "c", time.Minute))

	require.NoError(t, DeleteCachePrefix(ctx, rdb, "products:"))

	var s string
	found, err := GetCache(ctx, rdb, "products:page=1", &s)
	require.NoError(t, err)
	assert.False(t, found) // the whole family is gone
	found, err = GetCache(ctx, rdb, "admin:dashboard", &s)
	require.NoError(t, err)
	assert.True(t, found) // other keys survive
}
