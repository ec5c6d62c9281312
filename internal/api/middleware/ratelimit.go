package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/bakery-api/pkg/logger"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// Limiter 限流器；返回错误时请求放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 按客户端 IP 的令牌桶限流
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
	sweptAt time.Time
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow 判断 key 本次请求是否放行
func (l *IPRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1), nil
}

// sweep 清理长时间未访问的客户端，调用方持有锁
func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.sweptAt) < limiterIdleTTL {
		return
	}
	for key, cl := range l.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(l.clients, key)
		}
	}
	l.sweptAt = now
}

// RateLimit 按客户端 IP 限流，超限返回 429
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			ok = true
		}
		if !ok {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
