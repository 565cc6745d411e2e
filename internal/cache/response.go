// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for rendered public
// responses (JSON bodies, the RSS feed, the sitemap). Reads are served
// from Valkey when fresh; every editorial write clears the whole
// prefix, since any write can affect listings, related posts, the feed,
// and the sitemap at once.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "response:"

	// ListTTL matches the original listing cache window.
	ListTTL = 60 * time.Second
	// DetailTTL matches the original detail/category/feed cache window.
	DetailTTL = 5 * time.Minute
)

// ResponseCache manages rendered-response caching in Valkey. A nil
// *ResponseCache is valid and caches nothing, so the service runs
// unchanged without Valkey.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a response cache backed by the given Valkey
// client. Pass nil to disable caching.
func NewResponseCache(client *redis.Client) *ResponseCache {
	if client == nil {
		return nil
	}
	return &ResponseCache{client: client}
}

// Get retrieves a cached response body. Returns false on miss or when
// caching is disabled.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a response body under key with the given TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached response by scanning for the
// prefix. Called after each editorial write.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	if rc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("response cache cleared", "deleted", deleted)
	}
}
