package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every replica.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "rentique:rate_limit:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	k := l.prefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	// first hit opens the window
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

// NewRedisClient creates a client for addr. It does not dial.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Ping checks the connection to Redis.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
