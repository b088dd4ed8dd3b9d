package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"go-appointment-scheduling/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	Total int `json:"total"`
}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis, *test.Hook) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	log, hook := test.NewNullLogger()
	return New(rdb, log), mr, hook
}

func TestGetOrLoadJSON_LoadsOnceThenServesFromRedis(t *testing.T) {
	c, mr, _ := newCache(t)
	ctx := context.Background()
	loads := 0
	load := func(context.Context) (*counters, error) {
		loads++
		return &counters{Total: 7}, nil
	}

	first, err := GetOrLoadJSON(ctx, c, "stats", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoadJSON(ctx, c, "stats", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 7, first.Total)
	assert.Equal(t, 7, second.Total)
	assert.Equal(t, 1, loads)
	assert.True(t, mr.Exists("stats"))

	mr.FastForward(2 * time.Minute)
	_, err = GetOrLoadJSON(ctx, c, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestGetOrLoad_LoadErrorIsNotCached(t *testing.T) {
	c, mr, _ := newCache(t)
	boom := errors.New("boom")

	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestInvalidate(t *testing.T) {
	c, mr, _ := newCache(t)
	require.NoError(t, mr.Set("k", "v"))

	require.NoError(t, c.Invalidate(context.Background(), "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, c.Invalidate(context.Background()))
}

func TestGetOrLoad_WriteFailureIsLoggedAndValueServed(t *testing.T) {
	c, mr, hook := newCache(t)

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		mr.Close()
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(b))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "Failed to cache k")
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	log, _ := test.NewNullLogger()

	client, err := NewRedisClient(config.RedisConfig{
		Host:        host,
		Port:        port,
		PoolSize:    4,
		DialTimeout: time.Second,
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	assert.Equal(t, 4, client.Options().PoolSize)

	mr.Close()
	_, err = NewRedisClient(config.RedisConfig{
		Host:        host,
		Port:        port,
		DialTimeout: 200 * time.Millisecond,
	}, log)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
