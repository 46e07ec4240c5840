package cache

import (
	"context"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/platform/obs"
	"pdp-route-service/internal/ports"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisMatrixCache stores brace-text matrices in Redis under
// "matrix:<key>". Entries are set only when absent and expire after TTL
// (zero keeps them forever).
type RedisMatrixCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMatrixCache(rdb *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{rdb: rdb, ttl: ttl}
}

// NewRedisMatrixCacheFromURL parses a redis:// URL and connects a client.
func NewRedisMatrixCacheFromURL(url string, ttl time.Duration) (*RedisMatrixCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis matrix cache: parse url: %w", err)
	}
	return NewRedisMatrixCache(redis.NewClient(opt), ttl), nil
}

func (r *RedisMatrixCache) Get(ctx context.Context, key string) (_ domain.TravelTimeMatrix, err error) {
	defer obs.Time(ctx, "matrix.cache.redis.Get")(&err)

	k, err := r.key(key)
	if err != nil {
		return nil, err
	}

	body, err := r.rdb.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("get matrix cache: redis get %q: %w", k, err)
	}

	m, err := matrix.ParseSerialized(body)
	if err != nil {
		return nil, fmt.Errorf("get matrix cache key=%q: %w", k, err)
	}

	return m, nil
}

func (r *RedisMatrixCache) Put(ctx context.Context, key string, m domain.TravelTimeMatrix) (err error) {
	defer obs.Time(ctx, "matrix.cache.redis.Put")(&err)

	k, err := r.key(key)
	if err != nil {
		return err
	}

	if err := r.rdb.SetNX(ctx, k, matrix.Serialize(m), r.ttl).Err(); err != nil {
		return fmt.Errorf("insert matrix cache: redis setnx %q: %w", k, err)
	}

	return nil
}

// Close releases the underlying client.
func (r *RedisMatrixCache) Close() error { return r.rdb.Close() }

func (r *RedisMatrixCache) key(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("redis matrix cache: key must not be empty")
	}
	return "matrix:" + key, nil
}
