package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"go-appointment-scheduling/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultDialTimeout = 5 * time.Second

// NewRedisClient opens the pool backing token storage and the dashboard
// cache. It fails unless the server answers a PING within the dial timeout.
func NewRedisClient(cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
	})

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", client.Options().Addr, err)
	}

	log.WithFields(logrus.Fields{
		"addr":      client.Options().Addr,
		"db":        cfg.DB,
		"pool_size": client.Options().PoolSize,
	}).Info("Successfully connected to Redis")

	return client, nil
}
