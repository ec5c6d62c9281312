package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/model"
)

func seedRecipe(tb testing.TB, db *gorm.DB, title, price string) *model.Recipe {
	tb.Helper()
	r := &model.Recipe{ID: uuid.NewString(), Title: title, Price: decimal.RequireFromString(price), IsActive: true}
	if err := db.Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

type orderOpt func(*model.Order)

func createdAt(t time.Time) orderOpt { return func(o *model.Order) { o.CreatedAt = t } }
func paid() orderOpt                 { return func(o *model.Order) { o.Status = model.StatusPaid } }
func total(s string) orderOpt {
	return func(o *model.Order) { o.TotalAmount = decimal.RequireFromString(s) }
}
func deliverOn(t time.Time) orderOpt {
	return func(o *model.Order) { t := t.UTC(); o.DeliveryDate = &t }
}

func seedOrder(tb testing.TB, db *gorm.DB, recipe *model.Recipe, customer string, opts ...orderOpt) *model.Order {
	tb.Helper()
	o := &model.Order{
		ID:           uuid.NewString(),
		CustomerName: customer,
		Quantity:     1,
		TotalAmount:  recipe.Price,
		Status:       model.StatusPending,
		RecipeID:     recipe.ID,
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := db.Omit("Recipe").Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
