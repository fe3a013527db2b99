package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter per (scope, caller) pair.
// Key format: ratelimit:<scope>:<caller>. The first hit in a window sets the
// key's TTL; the window resets when the key expires.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewRateLimiter creates a RateLimiter with the given window size. A window
// <= 0 defaults to one minute, matching the per-minute tiers on the routes.
func NewRateLimiter(client *redis.Client, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, window: window}
}

// Allow reports whether the caller is still within limit hits for the scope
// in the current window.
func (l *RateLimiter) Allow(ctx context.Context, scope, caller string, limit int) (bool, error) {
	key := l.key(scope, caller)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(limit), nil
}

func (l *RateLimiter) key(scope, caller string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, caller)
}
