package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GroupCache stores JSON-encoded entries under "<group>:<key>" and supports
// coarse, whole-group eviction. It backs the read-through caching of the
// entity services.
type GroupCache struct {
	client *redis.Client
}

// NewGroupCache creates a GroupCache wrapping the given Redis client.
func NewGroupCache(client *redis.Client) *GroupCache {
	return &GroupCache{client: client}
}

// Get decodes the entry at (group, key) into dest. The second return value
// reports whether the key was present; absent keys are not an error.
func (c *GroupCache) Get(ctx context.Context, group, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, entryKey(group, key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", entryKey(group, key), err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", entryKey(group, key), err)
	}
	return true, nil
}

// Set stores value under (group, key) with the given TTL. Nil values are
// skipped so a miss always retries the backing store.
func (c *GroupCache) Set(ctx context.Context, group, key string, value any, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", entryKey(group, key), err)
	}
	if err := c.client.Set(ctx, entryKey(group, key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", entryKey(group, key), err)
	}
	return nil
}

// EvictGroup removes every entry under group by scanning "<group>:*".
func (c *GroupCache) EvictGroup(ctx context.Context, group string) error {
	iter := c.client.Scan(ctx, 0, group+":*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", group, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache evict %s: %w", group, err)
	}
	return nil
}

func entryKey(group, key string) string {
	return group + ":" + key
}
