package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled limiter always allows", func(t *testing.T) {
		l := NewRateLimiter(nil, false)
		for i := 0; i < 5; i++ {
			ok, err := l.Allow(ctx, "create_post", "ip:1", 1, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("Nil redis errors", func(t *testing.T) {
		l := NewRateLimiter(nil, true)
		_, err := l.Allow(ctx, "create_post", "ip:1", 1, time.Minute)
		assert.Error(t, err)
	})

	t.Run("Counts within window", func(t *testing.T) {
		mr, rdb := newMiniRedis(t)
		l := NewRateLimiter(rdb, true)

		for i := 0; i < 2; i++ {
			ok, err := l.Allow(ctx, "create_post", "ip:1", 2, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := l.Allow(ctx, "create_post", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		// Other clients have their own counter.
		ok, err = l.Allow(ctx, "create_post", "ip:2", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, time.Minute, mr.TTL("rl:create_post:ip:1"))

		mr.FastForward(2 * time.Minute)
		ok, err = l.Allow(ctx, "create_post", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRateLimiter_Handler(t *testing.T) {
	_, rdb := newMiniRedis(t)
	l := NewRateLimiter(rdb, true)

	app := fiber.New()
	app.Post("/posts", l.Handler("create_post", 1, time.Minute, FailOpen), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimiter_FailPolicies(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	l := NewRateLimiter(rdb, true)
	mr.Close()

	app := fiber.New()
	app.Post("/open", l.Handler("open", 1, time.Minute, FailOpen), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Post("/closed", l.Handler("closed", 1, time.Minute, FailClosed), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/open", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/closed", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
