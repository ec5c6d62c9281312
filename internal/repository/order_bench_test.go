package repository_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/internal/testutil"
)

func BenchmarkOrderCreate(b *testing.B) {
	db := testutil.NewDB(b)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	recipe := seedRecipe(b, db, "Brigadeiro", "2.50")
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		qty := rng.Intn(50) + 1
		_ = repo.Create(ctx, &model.Order{
			ID:           uuid.NewString(),
			CustomerName: fmt.Sprintf("customer-%d", i%100),
			Quantity:     qty,
			TotalAmount:  recipe.Price.Mul(decimal.NewFromInt(int64(qty))),
			Status:       model.StatusPending,
			RecipeID:     recipe.ID,
		})
	}
}

func BenchmarkOrderQueries(b *testing.B) {
	db := testutil.NewDB(b)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	// 预置 N 个订单，分布在最近 30 天
	const N = 5000
	recipe := seedRecipe(b, db, "Bolo de cenoura", "45.00")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := make([]*model.Order, 0, N)
	for i := 0; i < N; i++ {
		status := model.StatusPending
		if i%3 == 0 {
			status = model.StatusPaid
		}
		orders = append(orders, &model.Order{
			ID:           uuid.NewString(),
			CustomerName: fmt.Sprintf("customer-%d", i%100),
			Quantity:     1,
			TotalAmount:  recipe.Price,
			Status:       status,
			RecipeID:     recipe.ID,
			CreatedAt:    base.Add(-time.Duration(i) * 10 * time.Minute),
		})
	}
	if err := db.CreateInBatches(orders, 500).Error; err != nil {
		b.Fatalf("seed orders: %v", err)
	}

	b.ResetTimer()
	b.Run("List", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.List(ctx, (i%50)*10, 10)
		}
	})

	b.Run("SearchByCustomer", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.SearchByCustomer(ctx, "customer-4")
		}
	})

	b.Run("SumPaid", func(b *testing.B) {
		paid := model.StatusPaid
		for i := 0; i < b.N; i++ {
			_, _ = repo.SumTotalAmount(ctx, repository.SalesFilter{Status: &paid})
		}
	})
}
