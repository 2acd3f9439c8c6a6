package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter keeps counters in Redis so limits hold across replicas.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter connects to Redis and verifies the connection.
func NewRedisCounter(ctx context.Context, addr, password string, db int, prefix string) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCounter{client: client, prefix: prefix}, nil
}

// Incr increments key and sets its TTL when the window starts.
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = r.prefix + key

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("redis expire: %w", err)
		}
	}
	return count, nil
}

// Ping checks that Redis is reachable.
func (r *RedisCounter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisCounter) Close() error {
	return r.client.Close()
}
