package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr, client
}

type cachedPromo struct {
	Code  string `json:"code"`
	Value int    `json:"value"`
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "promo:code:WELCOME10", cachedPromo{Code: "WELCOME10", Value: 10}, time.Minute))

	var got cachedPromo
	found, err := c.Get(ctx, "promo:code:WELCOME10", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "WELCOME10", got.Code)
	assert.Equal(t, 10, got.Value)

	mr.FastForward(2 * time.Minute)

	found, err = c.Get(ctx, "promo:code:WELCOME10", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _, _ := setupTestRedis(t)

	var got cachedPromo
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_GetCorruptedEntryIsEvicted(t *testing.T) {
	c, mr, _ := setupTestRedis(t)
	require.NoError(t, mr.Set("page:home", "{not json"))

	var got map[string]interface{}
	found, err := c.Get(context.Background(), "page:home", &got)
	assert.Error(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("page:home"))
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, mr, _ := setupTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"product:slug:a", "product:slug:b", "product:featured", "settings:snapshot"} {
		require.NoError(t, c.Set(ctx, k, "x", 0))
	}

	require.NoError(t, c.DeletePattern(ctx, "product:*"))

	assert.False(t, mr.Exists("product:slug:a"))
	assert.False(t, mr.Exists("product:slug:b"))
	assert.False(t, mr.Exists("product:featured"))
	assert.True(t, mr.Exists("settings:snapshot"))
}

func TestRedisCache_IncrementExpire(t *testing.T) {
	c, mr, _ := setupTestRedis(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.Increment(ctx, "ratelimit:contact:1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	require.NoError(t, c.Expire(ctx, "ratelimit:contact:1.2.3.4", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("ratelimit:contact:1.2.3.4"))
}

func TestRedisCache_Publish(t *testing.T) {
	c, _, client := setupTestRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "settings:changed")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Publish(ctx, "settings:changed", "primary_color"))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "primary_color", msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestRedisCache_Subscribe(t *testing.T) {
	c, _, _ := setupTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, closeFn, err := c.Subscribe(ctx, "settings:changed")
	require.NoError(t, err)

	require.NoError(t, c.Publish(ctx, "settings:changed", "reload"))

	select {
	case payload := <-msgs:
		assert.Equal(t, "reload", payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}

	require.NoError(t, closeFn())
	_, open := <-msgs
	assert.False(t, open)
}
