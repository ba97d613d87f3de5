//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, logger.NewNop(), setupRedis(t))
	require.NoError(t, err)
	defer c.Close()

	type payload struct {
		Total int `json:"total"`
	}

	var miss payload
	found, err := c.Get(ctx, "analytics:all", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "analytics:all", payload{Total: 7}, time.Minute))

	var hit payload
	found, err = c.Get(ctx, "analytics:all", &hit)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, hit.Total)
}

func TestRedisCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, logger.NewNop(), setupRedis(t))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "short", 1, 50*time.Millisecond))
	time.Sleep(200 * time.Millisecond)

	var v int
	found, err := c.Get(ctx, "short", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Incr(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, logger.NewNop(), setupRedis(t))
	require.NoError(t, err)
	defer c.Close()

	first, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first)

	second, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 2, second)

	// counters stay readable through Get
	var current int64
	found, err := c.Get(ctx, "gen", &current)
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 2, current)
}
