package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache stores revoked refresh-token JTIs. Entries expire on their own
// once the underlying token would have expired anyway.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (c *RedisCache) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	return c.client.Set(ctx, blacklistKey(jti), "revoked", ttl).Err()
}

func (c *RedisCache) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	err := c.client.Get(ctx, blacklistKey(jti)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func blacklistKey(jti string) string {
	return "token_blacklist:" + jti
}
