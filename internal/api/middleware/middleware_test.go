package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if ip != "" {
		req.RemoteAddr = ip + ":1234"
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_PerClient(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewIPRateLimiter(0.001, 2)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "10.0.0.1").Code)
	w := serve(r, http.MethodGet, "/ping", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")

	// 其他客户端不受影响
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "10.0.0.2").Code)
}

func allow(t *testing.T, l Limiter, key string) bool {
	t.Helper()
	ok, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	require.True(t, allow(t, l, "a"))
	require.False(t, allow(t, l, "a"))

	now = now.Add(2 * limiterIdleTTL)
	require.True(t, allow(t, l, "b"))
	_, ok := l.clients["a"]
	assert.False(t, ok)
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// 2 次 / 4 秒
	l := NewRedisRateLimiter(client, 0.5, 2)
	assert.Equal(t, 4*time.Second, l.window)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, allow(t, l, "10.0.0.1"))
	assert.True(t, allow(t, l, "10.0.0.1"))
	assert.False(t, allow(t, l, "10.0.0.1"))
	assert.True(t, allow(t, l, "10.0.0.2"))

	// 计数键带过期时间
	keys := mr.Keys()
	require.NotEmpty(t, keys)
	assert.Greater(t, mr.TTL(keys[0]), time.Duration(0))

	now = now.Add(4 * time.Second)
	assert.True(t, allow(t, l, "10.0.0.1"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := gin.New()
	r.Use(RateLimit(NewRedisRateLimiter(client, 1, 1)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "10.0.0.1").Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("bakery")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/recipes", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	serve(r, http.MethodGet, "/recipes", "")
	serve(r, http.MethodGet, "/nope", "")

	w := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `bakery_http_requests_total{method="GET",route="/recipes",status="200"} 1`), body)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.Contains(t, body, "bakery_http_request_duration_seconds")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(r, http.MethodGet, "/", "")
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
