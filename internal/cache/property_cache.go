// Package cache provides the redis-backed response cache for the property
// search endpoint. Dashboard endpoints are deliberately uncached; they always
// recompute from the store.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix   = "property:"
	scanPattern = keyPrefix + "*"
	scanCount   = 100
)

// PropertyCache stores serialized search responses keyed by normalized query.
// A nil *PropertyCache is a no-op, so callers need no feature flag.
type PropertyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New builds a cache over the given redis client.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PropertyCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyCache{client: client, ttl: ttl, logger: logger}
}

// Key derives a stable cache key from the search query parameters.
func Key(query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		values := append([]string(nil), query[k]...)
		sort.Strings(values)
		for _, v := range values {
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(v)
			sb.WriteString("&")
		}
	}

	sum := sha256.Sum256([]byte(strings.TrimSuffix(sb.String(), "&")))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached response body for key, reporting whether it was
// present. Redis errors degrade to a miss.
func (c *PropertyCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

// Set stores a response body under key for the configured TTL.
func (c *PropertyCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached property response. Called after any property
// write; correctness over cleverness.
func (c *PropertyCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			c.logger.Warn("cache scan failed", zap.Error(err))
			return
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Int("keys", len(keys)), zap.Error(err))
		return
	}
	c.logger.Debug("property cache invalidated", zap.Int("keys", len(keys)))
}
