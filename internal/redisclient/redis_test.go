package redisclient

import (
	"context"
	"testing"

	"lema/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts, err := Options("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = Options("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = Options("redis://host:notaport/x")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client := Connect(context.Background(), mr.Addr())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	assert.Nil(t, Connect(context.Background(), addr))
}

func TestMetricsHook_CountsFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	client := Connect(context.Background(), mr.Addr())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	before := testutil.ToFloat64(middleware.RedisErrors.WithLabelValues("incr"))
	mr.SetError("forced failure")
	assert.Error(t, client.Incr(context.Background(), "n").Err())
	assert.Equal(t, before+1, testutil.ToFloat64(middleware.RedisErrors.WithLabelValues("incr")))
}
