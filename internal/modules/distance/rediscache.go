// README: Redis-backed distance cache with TTL expiry.
package distance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheScanPattern = "distance:*"

// RedisCache stores results as JSON values with a per-entry TTL. Redis
// reaps expired entries itself, so reads within the TTL are hits and
// everything after is a miss.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Result, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	var res Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return Result{}, false, err
	}
	return res, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, res Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// CleanupExpired deletes any distance keys left without a TTL (entries
// written before TTLs were enforced). Keys with a live TTL are redis's to
// reap.
func (c *RedisCache) CleanupExpired(ctx context.Context) (int, error) {
	var removed int
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, cacheScanPattern, 100).Result()
		if err != nil {
			return removed, err
		}
		for _, key := range keys {
			ttl, err := c.client.TTL(ctx, key).Result()
			if err != nil {
				return removed, err
			}
			if ttl < 0 {
				if err := c.client.Del(ctx, key).Err(); err != nil {
					return removed, err
				}
				removed++
			}
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}
