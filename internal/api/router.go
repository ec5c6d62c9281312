package api

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "github.com/d60-Lab/bakery-api/docs"

	"github.com/d60-Lab/bakery-api/config"
	"github.com/d60-Lab/bakery-api/internal/api/handler"
	"github.com/d60-Lab/bakery-api/internal/api/middleware"
	"github.com/d60-Lab/bakery-api/internal/api/request"
	"github.com/d60-Lab/bakery-api/internal/calendar"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/pkg/logger"
)

// Option 路由构建选项
type Option func(*options)

type options struct {
	limiter middleware.Limiter
}

// WithRateLimiter 替换默认的进程内限流器（仅在 RATE_LIMIT_RPS > 0 时生效）
func WithRateLimiter(l middleware.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// NewRouter 组装依赖并注册全部路由
func NewRouter(cfg *config.Config, db *gorm.DB, opts ...Option) *gin.Engine {
	request.Register()

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.limiter == nil && cfg.RateLimit.RPS > 0 {
		o.limiter = middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	cal := calendar.New(cfg.App.Location())
	orderRepo := repository.NewOrderRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	userRepo := repository.NewUserRepository(db)

	h := handler.New(cfg, db, cal, handler.Services{
		Auth:    service.NewAuthService(userRepo, cfg.Auth.BcryptCost),
		Recipes: service.NewRecipeService(recipeRepo),
		Orders:  service.NewOrderService(orderRepo, recipeRepo, cal, cfg.Orders.PageSize),
		Reports: service.NewReportService(orderRepo, cal, nil),
	})

	r := gin.New()
	metrics := middleware.NewMetrics("bakery")
	setupMiddleware(r, cfg, metrics, o)

	r.GET("/", h.Index(r.Routes))
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if !cfg.App.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth", h.Authenticate)
	r.POST("/register", h.Register)

	r.POST("/recipes", h.CreateRecipe)
	r.GET("/recipes", h.ListRecipes)
	r.GET("/recipe/:id", h.GetRecipe)
	r.PUT("/recipes/:id", h.UpdateRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders-by-date", h.ListOrdersByDate)

	orders := r.Group("/orders")
	{
		orders.GET("/:page", h.ListOrdersPage)
		orders.GET("/search", h.SearchOrders)
		orders.GET("/status/:status", h.ListOrdersByStatus)
		orders.GET("/pending-filter", h.ListPendingOrders)
		orders.GET("/total", h.TotalSales)
		orders.GET("/paid", h.PaidSales)
		orders.GET("/pending", h.PendingSales)
		orders.GET("/lastWeek", h.LastWeek)
		orders.GET("/delivery", h.ListDeliveries)
		orders.GET("/delivery/by-date", h.ListDeliveriesByDate)
	}

	order := r.Group("/order")
	{
		order.GET("/:id", h.GetOrder)
		order.PATCH("/:id/change-status", h.ChangeOrderStatus)
		order.PATCH("/change-status/:id", h.MarkOrderDelivered)
	}

	return r
}

func setupMiddleware(r *gin.Engine, cfg *config.Config, metrics *middleware.Metrics, o *options) {
	log := logger.L()

	r.Use(middleware.RequestID())
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health", "/metrics"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("request_id", middleware.GetRequestID(c))}
		},
	}))
	r.Use(ginzap.RecoveryWithZap(log, true))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Endpoint != "" {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(o.limiter))
	}
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range c.AllowOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = c.AllowOrigins
	if len(cc.AllowOrigins) == 0 {
		cc.AllowAllOrigins = true
	}
	return cc
}
