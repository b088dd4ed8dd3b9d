package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through Redis cache. Concurrent misses on the same key
// share a single load.
type Cache struct {
	rdb *redis.Client
	log *logrus.Logger
	sf  singleflight.Group
}

func New(rdb *redis.Client, log *logrus.Logger) *Cache {
	return &Cache{rdb: rdb, log: log}
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		b, err := load(ctx)
		if err != nil {
			return nil, err
		}
		// The loaded value is still served when the write fails.
		if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
			c.log.Warnf("Failed to cache %s: %+v", key, err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate %v: %+v", keys, err)
		return err
	}
	return nil
}

// GetOrLoadJSON is GetOrLoad for values stored as JSON.
func GetOrLoadJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
