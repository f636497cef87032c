package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned on a cache miss.
var ErrNotFound = errors.New("cache: key not found")

// Client is the minimal cache surface the engine consumes.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient connects and pings; a cache that cannot be reached at
// startup is a configuration error.
func NewRedisClient(cfg Config) (Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &redisClient{client: client}, nil
}

// NewClientFromRedis wraps an existing redis client (used with redismock in tests).
func NewClientFromRedis(client *redis.Client) Client {
	return &redisClient{client: client}
}

func (c *redisClient) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return value, err
}

func (c *redisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *redisClient) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
