package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter 基于 Redis 的固定窗口计数，多实例共享配额。
// 窗口长度为 burst/rps，窗口内最多放行 burst 次。
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, rps float64, burst int) *RedisRateLimiter {
	if burst < 1 {
		burst = 1
	}
	window := time.Second
	if rps > 0 {
		window = time.Duration(math.Ceil(float64(burst) / rps * float64(time.Second)))
	}
	return &RedisRateLimiter{
		client: client,
		prefix: "bakery:ratelimit:",
		limit:  int64(burst),
		window: window,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	k := l.prefix + key + ":" + strconv.FormatInt(slot, 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= l.limit, nil
}
