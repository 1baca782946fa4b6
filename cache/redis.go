package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisCache stores JSON values under "<prefix>:<key>".
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a region keyed by prefix. A zero ttl keeps entries until invalidated.
func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisCache) key(k string) string {
	return r.prefix + ":" + k
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", r.key(key), err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", r.key(key), err)
	}
	return true, nil
}

func (r *RedisCache) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key(key), err)
	}
	if err := r.rdb.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(key), err)
	}
	return nil
}

// InvalidateAll deletes every key in the region.
func (r *RedisCache) InvalidateAll(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, r.prefix+":*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del %s:*: %w", r.prefix, err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s:*: %w", r.prefix, err)
	}
	if len(keys) > 0 {
		if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del %s:*: %w", r.prefix, err)
		}
	}
	return nil
}

var _ Cache = (*RedisCache)(nil)
