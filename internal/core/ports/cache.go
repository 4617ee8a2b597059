package ports

import (
	"context"
	"time"
)

// Cache is a read-through cache keyed by (group, key). Groups map onto
// entity families ("users", "roles", "products") and are always evicted
// wholesale after a write to the family.
type Cache interface {
	// Get decodes the cached value into dest and reports whether the key
	// was present. A decode or transport failure is returned as an error;
	// callers are expected to fall back to the backing store.
	Get(ctx context.Context, group, key string, dest any) (bool, error)
	// Set stores value under (group, key) with the given TTL. Nil values
	// must not be stored: a miss is always retried against the store.
	Set(ctx context.Context, group, key string, value any, ttl time.Duration) error
	// EvictGroup removes every entry under group.
	EvictGroup(ctx context.Context, group string) error
}
