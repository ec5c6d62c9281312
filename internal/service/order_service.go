package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/calendar"
	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/pkg/logger"
)

type CreateOrderInput struct {
	RecipeID     string
	CustomerName string
	Quantity     int
	Status       model.Status // 为空时取 pending
	IsDelivered  bool
	DeliveryDate *time.Time
}

// OrderPage 分页结果
type OrderPage struct {
	Orders     []*model.Order `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// OrderService 订单服务
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, page int) (*OrderPage, error)
	Search(ctx context.Context, term string) ([]*model.Order, error)
	ListByStatus(ctx context.Context, status model.Status) ([]*model.Order, error)
	// ChangeStatus 任意合法状态之间均可切换
	ChangeStatus(ctx context.Context, id string, status model.Status) (*model.Order, error)
	MarkDelivered(ctx context.Context, id string) (*model.Order, error)
	// ListCreatedOn 指定业务日（YYYY-MM-DD）内创建的订单
	ListCreatedOn(ctx context.Context, date string) ([]*model.Order, error)
	ListPendingDeliveries(ctx context.Context) ([]*model.Order, error)
	// ListDeliveriesOn 配送日期落在指定业务日内的未配送订单
	ListDeliveriesOn(ctx context.Context, date string) ([]*model.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	recipes  repository.RecipeRepository
	cal      *calendar.Calendar
	pageSize int
}

func NewOrderService(orders repository.OrderRepository, recipes repository.RecipeRepository, cal *calendar.Calendar, pageSize int) OrderService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &orderService{orders: orders, recipes: recipes, cal: cal, pageSize: pageSize}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, invalidInput("customerName is required")
	}
	if in.Quantity < 1 || in.Quantity > model.MaxOrderQuantity {
		return nil, invalidInput("quantity must be between 1 and %d", model.MaxOrderQuantity)
	}
	status := in.Status
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		return nil, invalidInput("unknown status %q", status)
	}

	recipe, err := s.recipes.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, recipeErr(err)
	}
	if !recipe.IsActive {
		return nil, ErrRecipeNotFound
	}

	total := recipe.Price.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)
	if total.GreaterThan(model.MaxOrderTotal) {
		return nil, invalidInput("order total %s exceeds %s", model.Money(total), model.Money(model.MaxOrderTotal))
	}

	order := &model.Order{
		ID:           uuid.NewString(),
		CustomerName: name,
		Quantity:     in.Quantity,
		TotalAmount:  total,
		Status:       status,
		IsDelivered:  in.IsDelivered,
		RecipeID:     recipe.ID,
	}
	if in.DeliveryDate != nil {
		d := in.DeliveryDate.UTC()
		order.DeliveryDate = &d
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Recipe = recipe

	logger.Debug("order created",
		zap.String("order_id", order.ID),
		zap.String("recipe_id", recipe.ID),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, orderErr(err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, page int) (*OrderPage, error) {
	if page < 1 {
		return nil, invalidInput("page must be at least 1")
	}

	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	result := &OrderPage{
		Orders:     []*model.Order{},
		Page:       page,
		PageSize:   s.pageSize,
		Total:      total,
		TotalPages: int((total + int64(s.pageSize) - 1) / int64(s.pageSize)),
	}
	// 超出末页时不查询，(page-1)*pageSize 对极大页码会溢出
	if page > result.TotalPages {
		return result, nil
	}

	orders, err := s.orders.List(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	if orders != nil {
		result.Orders = orders
	}
	return result, nil
}

func (s *orderService) Search(ctx context.Context, term string) ([]*model.Order, error) {
	return nonNil(s.orders.SearchByCustomer(ctx, term))
}

func (s *orderService) ListByStatus(ctx context.Context, status model.Status) ([]*model.Order, error) {
	if !status.Valid() {
		return nil, invalidInput("unknown status %q", status)
	}
	return nonNil(s.orders.ListByStatus(ctx, status))
}

func (s *orderService) ChangeStatus(ctx context.Context, id string, status model.Status) (*model.Order, error) {
	if !status.Valid() {
		return nil, invalidInput("unknown status %q", status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, orderErr(err)
	}
	return s.Get(ctx, id)
}

func (s *orderService) MarkDelivered(ctx context.Context, id string) (*model.Order, error) {
	if err := s.orders.MarkDelivered(ctx, id); err != nil {
		return nil, orderErr(err)
	}
	return s.Get(ctx, id)
}

func (s *orderService) ListCreatedOn(ctx context.Context, date string) ([]*model.Order, error) {
	w, err := s.cal.DayOf(date)
	if err != nil {
		return nil, invalidInput("%v", err)
	}
	w = w.UTC()
	return nonNil(s.orders.ListCreatedBetween(ctx, w.Start, w.End))
}

func (s *orderService) ListPendingDeliveries(ctx context.Context) ([]*model.Order, error) {
	return nonNil(s.orders.ListUndelivered(ctx))
}

func (s *orderService) ListDeliveriesOn(ctx context.Context, date string) ([]*model.Order, error) {
	w, err := s.cal.DayOf(date)
	if err != nil {
		return nil, invalidInput("%v", err)
	}
	w = w.UTC()
	return nonNil(s.orders.ListUndeliveredBetween(ctx, w.Start, w.End))
}

func orderErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// nonNil 保证列表序列化为 [] 而非 null
func nonNil(orders []*model.Order, err error) ([]*model.Order, error) {
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	return orders, nil
}
