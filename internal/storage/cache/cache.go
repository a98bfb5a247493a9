package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin keyed JSON cache over Redis. Reads are best-effort: a
// Redis failure degrades to a miss so the database stays the source of
// truth. Mutations in the service layer call Invalidate with the collection
// key and, for single-row changes, the id key, matching the
// invalidate-after-mutation contract of the data access layer.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a Cache with the given TTL for every entry.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// CollectionKey names the cached list for an entity kind.
func CollectionKey(entity string) string {
	return fmt.Sprintf("invoicesflow:%s:all", entity)
}

// IDKey names the cached single row for an entity kind and id.
func IDKey(entity, id string) string {
	return fmt.Sprintf("invoicesflow:%s:%s", entity, id)
}

// GetJSON loads key into dest. Returns false on miss or any Redis error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache: error reading key %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Cache: error decoding key %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores value under key with the configured TTL. Failures are
// logged only.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Cache: error encoding key %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Cache: error writing key %s: %v", key, err)
	}
}

// Invalidate deletes the given keys. Failures are logged only; a stale entry
// expires via TTL in the worst case.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Cache: error invalidating keys %v: %v", keys, err)
	}
}
