package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL applies when the configured TTL is not positive
	DefaultCacheTTL = 10 * time.Minute
)

// CacheService stores JSON values in Redis hashes, one hash per key, so a
// whole group of fields can be dropped at once. A nil client disables it.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheService{client: client, ttl: ttl}
}

// Enabled reports whether a Redis client is configured.
func (c *CacheService) Enabled() bool {
	return c != nil && c.client != nil
}

// GetField reads field of key into dest. A miss returns false and no error.
func (c *CacheService) GetField(ctx context.Context, key, field string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.client.HGet(ctx, CacheKeyPrefix+key, field).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetField stores value under field of key and refreshes the key's TTL.
func (c *CacheService) SetField(ctx context.Context, key, field string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	cacheKey := CacheKeyPrefix + key
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, cacheKey, field, data)
	pipe.Expire(ctx, cacheKey, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Delete removes key and all of its fields.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, CacheKeyPrefix+key).Err()
}

// Generation returns the current generation of key, 0 when it was never bumped.
func (c *CacheService) Generation(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Bump advances the generation of key. Values stored under VersionedKey with
// an older generation are never read again and expire with their TTL.
func (c *CacheService) Bump(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Incr(ctx, generationKey(key)).Err()
}

// VersionedKey is key scoped to one generation.
func VersionedKey(key string, gen int64) string {
	return key + ":g" + strconv.FormatInt(gen, 10)
}

func generationKey(key string) string {
	return CacheKeyPrefix + key + ":gen"
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}
