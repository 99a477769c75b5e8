package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limit is a sliding-window rate limit.
type Limit struct {
	Window time.Duration
	Max    int
}

// Limiter enforces a named sliding-window limit per identifier (an IP
// address for the contact form) backed by a Redis sorted set.
type Limiter struct {
	redis *redis.Client
	name  string
	limit Limit
}

func NewLimiter(redis *redis.Client, name string, limit Limit) *Limiter {
	return &Limiter{
		redis: redis,
		name:  name,
		limit: limit,
	}
}

// Allow records an attempt and reports whether it fits the window.
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("rate_limit:%s:%s", l.name, identifier)

	pipe := l.redis.Pipeline()
	now := time.Now().UnixNano()
	windowStart := now - l.limit.Window.Nanoseconds()

	// Remove old entries
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))

	// Count current window
	pipe.ZCard(ctx, key)

	// Add new entry
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})

	// Set expiration
	pipe.Expire(ctx, key, l.limit.Window*2)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("redis pipeline error: %w", err)
	}

	count := results[1].(*redis.IntCmd).Val()
	return count < int64(l.limit.Max), nil
}
