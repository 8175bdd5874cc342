package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estantedev/estante/pkg/cache"
)

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewInMemoryCache()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMissReturnsNil(t *testing.T) {
	c := cache.NewInMemoryCache()

	got, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	c := cache.NewInMemoryCache()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), -time.Second))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c := cache.NewInMemoryCache()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewInMemoryCache()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Clear(ctx))

	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}
