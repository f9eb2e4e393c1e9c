package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/retail-dashboard/pkg/logger"
)

// Limiter implements a sliding-window attempt limiter on Redis sorted sets.
// A Limiter without a Redis client allows everything.
type Limiter struct {
	redis       *redis.Client
	prefix      string
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewLimiter creates a new limiter
func NewLimiter(redisClient *redis.Client, prefix string, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		redis:       redisClient,
		prefix:      prefix,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Enabled reports whether attempts are actually counted
func (l *Limiter) Enabled() bool {
	return l != nil && l.redis != nil && l.maxRequests > 0
}

// Allow records an attempt for identifier and reports whether it fits the window
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}

	key := l.key(identifier)
	now := l.now()
	windowStart := now.Add(-l.window)

	pipe := l.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Logger.Error().
			Err(err).
			Str("identifier", identifier).
			Msg("Rate limiter error")
		// Fail open; the credential check still runs
		return true, 0, err
	}

	if countCmd.Val() >= int64(l.maxRequests) {
		return false, l.window, nil
	}
	return true, 0, nil
}

// Reset forgets all attempts for identifier
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	if !l.Enabled() {
		return nil
	}
	return l.redis.Del(ctx, l.key(identifier)).Err()
}

func (l *Limiter) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, identifier)
}
