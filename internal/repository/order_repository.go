package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d60-Lab/bakery-api/internal/model"
)

// SalesFilter 销售额汇总条件；nil 字段表示不过滤
type SalesFilter struct {
	Status *model.Status
	From   *time.Time
	To     *time.Time // exclusive
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Create 创建订单（不级联写入 Recipe）
	Create(ctx context.Context, order *model.Order) error

	// GetByID 根据订单ID查询订单，附带配方
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// List 按创建时间倒序分页
	List(ctx context.Context, offset, limit int) ([]*model.Order, error)

	// Count 统计订单数量
	Count(ctx context.Context) (int64, error)

	// SearchByCustomer 客户名不区分大小写子串匹配；空串返回全部
	SearchByCustomer(ctx context.Context, term string) ([]*model.Order, error)

	// ListByStatus 按状态过滤
	ListByStatus(ctx context.Context, status model.Status) ([]*model.Order, error)

	// ListCreatedBetween created_at ∈ [from, to)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Order, error)

	// ListUndelivered 未配送订单，按配送日期排序
	ListUndelivered(ctx context.Context) ([]*model.Order, error)

	// ListUndeliveredBetween 未配送且 delivery_date ∈ [from, to)
	ListUndeliveredBetween(ctx context.Context, from, to time.Time) ([]*model.Order, error)

	// CreatedTimesBetween 返回区间内订单的创建时间，用于按日聚合
	CreatedTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// MarkDelivered 标记为已配送（单向）
	MarkDelivered(ctx context.Context, id string) error

	// SumTotalAmount 汇总 total_amount；无匹配行返回 0
	SumTotalAmount(ctx context.Context, filter SalesFilter) (decimal.Decimal, error)
}
