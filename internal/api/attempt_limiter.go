package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoginLimiter counts failed logins per key inside a sliding window.
type LoginLimiter interface {
	TooManyRecent(ctx context.Context, key string, now time.Time) (bool, error)
	AddFailure(ctx context.Context, key string, now time.Time) error
	Reset(ctx context.Context, key string) error
}

type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	return len(pruned) >= limit
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	pruned = append(pruned, now)
	limiter.attempts[key] = pruned
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

// MemoryLoginLimiter keeps attempts in process. It is enough for a single
// instance; use RedisLoginLimiter when several instances share traffic.
type MemoryLoginLimiter struct {
	attempts *attemptLimiter
	limit    int
	window   time.Duration
}

func NewMemoryLoginLimiter(limit int, window time.Duration) *MemoryLoginLimiter {
	return &MemoryLoginLimiter{attempts: newAttemptLimiter(), limit: limit, window: window}
}

func (limiter *MemoryLoginLimiter) TooManyRecent(_ context.Context, key string, now time.Time) (bool, error) {
	return limiter.attempts.tooManyRecent(key, now, limiter.limit, limiter.window), nil
}

func (limiter *MemoryLoginLimiter) AddFailure(_ context.Context, key string, now time.Time) error {
	limiter.attempts.addFailure(key, now, limiter.window)
	return nil
}

func (limiter *MemoryLoginLimiter) Reset(_ context.Context, key string) error {
	limiter.attempts.reset(key)
	return nil
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
