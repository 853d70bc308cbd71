// Package ratelimit throttles the public auth endpoints with a fixed-window
// counter per client IP.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// Counter increments the hit count of key inside a window of length ttl.
type Counter interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisCounter implements Counter with INCR and EXPIRE.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter wraps a connected client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Increment bumps key and starts its expiry on the first hit of a window.
func (r *RedisCounter) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Limiter allows up to limit hits per window for each key.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	prefix  string
	logger  *zap.Logger
	now     func() time.Time
}

// NewLimiter builds a limiter. A nil counter or non-positive limit disables it.
func NewLimiter(counter Counter, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		counter: counter,
		limit:   limit,
		window:  window,
		prefix:  "ratelimit:auth",
		logger:  logger,
		now:     time.Now,
	}
}

// Enabled reports whether requests are being counted.
func (l *Limiter) Enabled() bool {
	return l != nil && l.counter != nil && l.limit > 0 && l.window > 0
}

// Allow reports whether another hit for key fits in the current window.
// Counter failures allow the request.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if !l.Enabled() {
		return true
	}

	bucket := l.now().UnixNano() / int64(l.window)
	count, err := l.counter.Increment(ctx, fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket), l.window)
	if err != nil {
		l.logger.Warn("rate limiter unavailable; allowing request", zap.Error(err))
		return true
	}
	return count <= int64(l.limit)
}

// Middleware rejects callers over the limit with 429.
func (l *Limiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.UserContext(), c.IP()) {
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(l.window.Seconds())))
			return apperrors.NewTooManyRequests()
		}
		return c.Next()
	}
}
