package cities

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cities:q:"

// Cache is a Redis-backed cache of filter results keyed by normalized query.
// Every failure degrades to a cache miss; the dataset scan is always the
// fallback, so the cache is never load-bearing.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a query cache. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached result for the query, if present.
func (c *Cache) Get(ctx context.Context, query string) ([]Entry, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Set stores the result for the query.
func (c *Cache) Set(ctx context.Context, query string, entries []Entry) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(query), payload, c.ttl).Err()
}

func cacheKey(query string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}
