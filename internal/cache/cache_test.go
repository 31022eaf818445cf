package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"idcard/internal/config"
)

func TestNew_Disabled(t *testing.T) {
	c := New(config.RedisConfig{Enabled: false, Addr: "localhost:6379"})
	assert.Nil(t, c)
}

func TestNilClient_IsNoOp(t *testing.T) {
	var c *Client
	ctx := context.Background()

	got, err := c.Get(ctx, "template:1")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "template:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "template:1"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
	assert.Zero(t, c.TTL())
}

func TestUnreachableRedis_FailsSafe(t *testing.T) {
	// nothing listens on port 1
	c := New(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1", TTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := c.Get(ctx, "template:1")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "template:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "template:1"))
	assert.Error(t, c.Ping(ctx))
	assert.Equal(t, time.Minute, c.TTL())
}
