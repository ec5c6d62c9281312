package repository

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/bakery-api/internal/model"
)

// orderRepository 单库订单仓储实现
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.withRecipe(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, offset, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withRecipe(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) SearchByCustomer(ctx context.Context, term string) ([]*model.Order, error) {
	q := r.withRecipe(ctx)
	if key := model.CustomerKey(term); key != "" {
		q = q.Where(`customer_key LIKE ? ESCAPE '\'`, "%"+escapeLike(key)+"%")
	}
	var orders []*model.Order
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.Status) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withRecipe(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withRecipe(ctx).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListUndelivered(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withRecipe(ctx).
		Where("is_delivered = ?", false).
		Order("delivery_date").
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListUndeliveredBetween(ctx context.Context, from, to time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withRecipe(ctx).
		Where("is_delivered = ?", false).
		Where("delivery_date >= ? AND delivery_date < ?", from.UTC(), to.UTC()).
		Order("delivery_date").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CreatedTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at").
		Pluck("created_at", &times).Error
	return times, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	return r.updateColumn(ctx, id, "status", status)
}

func (r *orderRepository) MarkDelivered(ctx context.Context, id string) error {
	return r.updateColumn(ctx, id, "is_delivered", true)
}

func (r *orderRepository) SumTotalAmount(ctx context.Context, filter SalesFilter) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).Select("SUM(total_amount)")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", filter.To.UTC())
	}

	// SUM 在无匹配行时返回 NULL
	var sum decimal.NullDecimal
	if err := q.Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(2), nil
}

func (r *orderRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) withRecipe(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Recipe")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
