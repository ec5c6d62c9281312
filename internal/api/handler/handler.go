package handler

import (
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/config"
	"github.com/d60-Lab/bakery-api/internal/calendar"
	"github.com/d60-Lab/bakery-api/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	authService   service.AuthService
	recipeService service.RecipeService
	orderService  service.OrderService
	reportService service.ReportService

	cal     *calendar.Calendar
	db      *gorm.DB
	app     config.AppConfig
	started time.Time
}

// Services 处理器依赖的业务服务
type Services struct {
	Auth    service.AuthService
	Recipes service.RecipeService
	Orders  service.OrderService
	Reports service.ReportService
}

// New 创建处理器；db 仅用于健康检查
func New(cfg *config.Config, db *gorm.DB, cal *calendar.Calendar, svc Services) *Handler {
	return &Handler{
		authService:   svc.Auth,
		recipeService: svc.Recipes,
		orderService:  svc.Orders,
		reportService: svc.Reports,
		cal:           cal,
		db:            db,
		app:           cfg.App,
		started:       time.Now(),
	}
}
