package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisLoginKeyPrefix = "fitcoach:login_failures:"

// RedisLoginLimiter stores each failure as a sorted-set member scored by
// its unix millisecond timestamp.
type RedisLoginLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRedisLoginLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{client: client, limit: limit, window: window}
}

func (limiter *RedisLoginLimiter) TooManyRecent(ctx context.Context, key string, now time.Time) (bool, error) {
	redisKey := redisLoginKeyPrefix + key

	pipe := limiter.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", limiter.threshold(now))
	count := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("count login failures: %w", err)
	}
	return count.Val() >= int64(limiter.limit), nil
}

func (limiter *RedisLoginLimiter) AddFailure(ctx context.Context, key string, now time.Time) error {
	redisKey := redisLoginKeyPrefix + key

	pipe := limiter.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", limiter.threshold(now))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, limiter.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

func (limiter *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	if err := limiter.client.Del(ctx, redisLoginKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}
	return nil
}

// threshold is inclusive: a failure exactly one window old no longer counts.
func (limiter *RedisLoginLimiter) threshold(now time.Time) string {
	return strconv.FormatInt(now.Add(-limiter.window).UnixMilli(), 10)
}
