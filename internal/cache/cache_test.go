package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
)

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var dst map[string]int
	found, err := c.Get(ctx, "k", &dst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dst)

	gen, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, c.Close())
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), logger.NewNop(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}
