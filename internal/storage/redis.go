package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:local:"

// RedisBackend stores each browser namespace as one hash with a sliding TTL.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

// DialRedis parses redisURL, pings the server and returns a backend.
func DialRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisBackend, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisBackend(client, ttl), nil
}

func (r *RedisBackend) Open(browserID string) Local {
	return &redisLocal{r: r, key: redisKeyPrefix + browserID}
}

func (r *RedisBackend) Close() error { return r.client.Close() }

type redisLocal struct {
	r   *RedisBackend
	key string
}

func (l *redisLocal) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := l.r.client.HGet(ctx, l.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", field, err)
	}
	return v, true, nil
}

func (l *redisLocal) Set(ctx context.Context, field, value string) error {
	pipe := l.r.client.TxPipeline()
	pipe.HSet(ctx, l.key, field, value)
	if l.r.ttl > 0 {
		pipe.Expire(ctx, l.key, l.r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset %s: %w", field, err)
	}
	return nil
}

func (l *redisLocal) Remove(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := l.r.client.HDel(ctx, l.key, fields...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}
