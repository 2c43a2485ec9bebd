package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kaushiks90/DevConnector/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// TTLs per cached entity. Hot single-document reads live longer than lists.
const (
	UserTTL    = 10 * time.Minute
	ProfileTTL = 5 * time.Minute
	PostTTL    = 2 * time.Minute
	ListTTL    = 30 * time.Second
)

// UserKey returns the cache key for a user document.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// ProfileKey returns the cache key for a profile looked up by owning user.
func ProfileKey(userID uint) string {
	return fmt.Sprintf("profile:user:%d", userID)
}

// PostKey returns the cache key for a post document.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// PostsListKey is the cache key for the first page of the public posts list.
const PostsListKey = "posts:list:first"

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache failures never fail the read path.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		middleware.CacheHits.WithLabelValues(keyPrefix(key)).Inc()
		return nil
	}
	middleware.CacheMisses.WithLabelValues(keyPrefix(key)).Inc()

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes the given keys from the cache, best-effort.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	_ = client.Del(ctx, keys...).Err()
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
