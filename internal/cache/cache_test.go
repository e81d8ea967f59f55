package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, JobKey("1"), map[string]string{"a": "b"}, time.Minute))
	var dst map[string]string
	hit, err := c.GetJSON(ctx, JobKey("1"), &dst)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Del(ctx, JobKey("1")))
}

// Runs against a live server only when TEST_REDIS_ADDR is set.
func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	c := NewRedisCache(rdb, "test:"+uuid.NewString()+":")

	type payload struct {
		Title string `json:"title"`
	}
	require.NoError(t, c.SetJSON(ctx, JobKey("1"), payload{Title: "Backend"}, time.Minute))

	var got payload
	hit, err := c.GetJSON(ctx, JobKey("1"), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Backend", got.Title)

	require.NoError(t, c.Del(ctx, JobKey("1")))
	hit, err = c.GetJSON(ctx, JobKey("1"), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, rdb.Set(ctx, c.key("bad"), "{not json", time.Minute).Err())
	hit, err = c.GetJSON(ctx, "bad", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.EqualValues(t, 0, rdb.Exists(ctx, c.key("bad")).Val())
}
