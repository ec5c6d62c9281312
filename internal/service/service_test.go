package service_test

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/calendar"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/internal/testutil"
)

type services struct {
	db      *gorm.DB
	auth    service.AuthService
	recipes service.RecipeService
	orders  service.OrderService
	reports service.ReportService
}

func saoPaulo(tb testing.TB) *calendar.Calendar {
	tb.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		tb.Fatalf("load location: %v", err)
	}
	return calendar.New(loc)
}

// newServices now 固定报表服务的当前时间
func newServices(tb testing.TB, pageSize int, now func() time.Time) *services {
	tb.Helper()
	db := testutil.NewDB(tb)
	cal := saoPaulo(tb)
	orderRepo := repository.NewOrderRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	return &services{
		db:      db,
		auth:    service.NewAuthService(repository.NewUserRepository(db), 4),
		recipes: service.NewRecipeService(recipeRepo),
		orders:  service.NewOrderService(orderRepo, recipeRepo, cal, pageSize),
		reports: service.NewReportService(orderRepo, cal, now),
	}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
