package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/bakery-api/pkg/logger"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// HealthResponse 健康检查结果
type HealthResponse struct {
	Status      string      `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	Uptime      float64     `json:"uptime"` // 秒
	Memory      MemoryStats `json:"memory"`
	Environment string      `json:"environment"`
	Database    string      `json:"database"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"numGC"`
	Goroutines int    `json:"goroutines"`
}

// Route 路由目录项
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// IndexResponse 根路径响应
type IndexResponse struct {
	Name      string  `json:"name"`
	Version   string  `json:"version"`
	Endpoints []Route `json:"endpoints"`
}

// Health 存活与数据库连通性检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Seconds(),
		Memory: MemoryStats{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			NumGC:      mem.NumGC,
			Goroutines: runtime.NumGoroutine(),
		},
		Environment: h.app.Env,
		Database:    "up",
	}

	if err := h.pingDB(c.Request.Context()); err != nil {
		logger.Warn("health check: database unreachable", zap.Error(err))
		resp.Status = "error"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	response.Success(c, resp)
}

func (h *Handler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Index 返回服务信息与已注册路由
// @Summary 路由目录
// @Tags 系统
// @Produce json
// @Success 200 {object} IndexResponse
// @Router / [get]
func (h *Handler) Index(routes func() gin.RoutesInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoints := make([]Route, 0)
		for _, r := range routes() {
			endpoints = append(endpoints, Route{Method: r.Method, Path: r.Path})
		}
		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return endpoints[i].Method < endpoints[j].Method
		})
		response.Success(c, IndexResponse{Name: h.app.Name, Version: h.app.Version, Endpoints: endpoints})
	}
}
