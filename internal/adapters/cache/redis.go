package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect initializes a Redis client from URL or host:port input.
// Supporting both formats keeps local/dev and container config paths simple.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisTokenCache fronts the session store with short-lived offline-token
// entries. Invalidate is called after the store row is deleted, so a revoked
// shop cannot be re-served from here.
type RedisTokenCache struct {
	client *redis.Client
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{client: client}
}

func tokenKey(shop string) string {
	return "reviews:token:" + strings.ToLower(strings.TrimSpace(shop))
}

func (c *RedisTokenCache) Get(ctx context.Context, shop string) (string, bool, error) {
	token, err := c.client.Get(ctx, tokenKey(shop)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return token, true, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, shop, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return c.client.Set(ctx, tokenKey(shop), token, ttl).Err()
}

func (c *RedisTokenCache) Invalidate(ctx context.Context, shop string) error {
	return c.client.Del(ctx, tokenKey(shop)).Err()
}
