package xredis

import (
	"context"
	"errors"
	"time"

	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("redis: key not found")

type Client interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}

func (c *client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.redisClient.Set(ctx, key, value, ttl).Err()
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	s, err := c.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}

	return s, err
}
