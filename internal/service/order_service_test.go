package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/service"
)

func newRecipe(t *testing.T, s *services, title, price string) *model.Recipe {
	t.Helper()
	r, err := s.recipes.Create(context.Background(), service.CreateRecipeInput{Title: title, Price: decimal.RequireFromString(price)})
	require.NoError(t, err)
	return r
}

func TestOrderService_TotalFixedAtCreation(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Brigadeiro", "5.00")

	order, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: recipe.ID, CustomerName: "Ana", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "15.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, model.StatusPending, order.Status)

	price := decimal.RequireFromString("7.00")
	_, err = s.recipes.Update(ctx, recipe.ID, service.UpdateRecipeInput{Price: &price})
	require.NoError(t, err)

	got, err := s.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "15.00", got.TotalAmount.StringFixed(2))
	require.NotNil(t, got.Recipe)
	assert.Equal(t, "7.00", got.Recipe.Price.StringFixed(2))
}

func TestOrderService_MissingOrInactiveRecipe(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()

	_, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: uuid.NewString(), CustomerName: "Ana", Quantity: 1})
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	recipe := newRecipe(t, s, "Sonho", "6.00")
	require.NoError(t, s.recipes.Delete(ctx, recipe.ID))
	_, err = s.orders.Create(ctx, service.CreateOrderInput{RecipeID: recipe.ID, CustomerName: "Ana", Quantity: 1})
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	var count int64
	require.NoError(t, s.db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderService_CreateValidation(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Sonho", "6.00")

	cases := []service.CreateOrderInput{
		{RecipeID: recipe.ID, CustomerName: "Ana", Quantity: 0},
		{RecipeID: recipe.ID, CustomerName: " ", Quantity: 1},
		{RecipeID: recipe.ID, CustomerName: "Ana", Quantity: 1, Status: "shipped"},
	}
	for _, in := range cases {
		_, err := s.orders.Create(ctx, in)
		assert.ErrorIs(t, err, service.ErrInvalidInput, "%+v", in)
	}
}

func TestOrderService_Pagination(t *testing.T) {
	s := newServices(t, 3, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Pão de queijo", "1.50")

	for i := 0; i < 7; i++ {
		_, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: recipe.ID, CustomerName: "c", Quantity: i + 1})
		require.NoError(t, err)
	}

	var all []*model.Order
	require.NoError(t, s.db.Order("created_at DESC").Order("id DESC").Find(&all).Error)

	var concat []string
	for page := 1; page <= 4; page++ {
		p, err := s.orders.List(ctx, page)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(p.Orders), 3)
		assert.EqualValues(t, 7, p.Total)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 3, p.PageSize)
		for _, o := range p.Orders {
			concat = append(concat, o.ID)
		}
		if page == 4 {
			assert.NotNil(t, p.Orders)
			assert.Empty(t, p.Orders)
		}
	}

	require.Len(t, concat, len(all))
	for i, o := range all {
		assert.Equal(t, o.ID, concat[i])
	}

	_, err := s.orders.List(ctx, 0)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// offset 乘法溢出的页码同样按越界处理
	for _, page := range []int{math.MaxInt/3 + 2, math.MaxInt} {
		p, err := s.orders.List(ctx, page)
		require.NoError(t, err, page)
		assert.NotNil(t, p.Orders)
		assert.Empty(t, p.Orders, page)
		assert.EqualValues(t, 7, p.Total)
	}
}

func TestOrderService_ListEmptyStore(t *testing.T) {
	s := newServices(t, 3, nil)

	p, err := s.orders.List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, p.Orders)
	assert.Empty(t, p.Orders)
	assert.Zero(t, p.TotalPages)
}

func TestOrderService_AmountLimits(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	cheap := newRecipe(t, s, "Brigadeiro", "5.50")
	pricey := newRecipe(t, s, "Bolo de casamento", "99999999.99")

	_, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: cheap.ID, CustomerName: "Ana", Quantity: model.MaxOrderQuantity + 1})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	order, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: cheap.ID, CustomerName: "Ana", Quantity: model.MaxOrderQuantity})
	require.NoError(t, err)
	assert.Equal(t, "55000.00", order.TotalAmount.StringFixed(2))

	// 99999999.99 × 101 超出 decimal(12,2)
	_, err = s.orders.Create(ctx, service.CreateOrderInput{RecipeID: pricey.ID, CustomerName: "Ana", Quantity: 101})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.orders.Create(ctx, service.CreateOrderInput{RecipeID: pricey.ID, CustomerName: "Ana", Quantity: 100})
	require.NoError(t, err)

	var count int64
	require.NoError(t, s.db.Model(&model.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestOrderService_StatusAndDelivery(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Brigadeiro", "2.50")

	order, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: recipe.ID, CustomerName: "Ana", Quantity: 2, Status: model.StatusPaid})
	require.NoError(t, err)

	// 不做状态流转限制：paid 可以改回 pending
	got, err := s.orders.ChangeStatus(ctx, order.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	_, err = s.orders.ChangeStatus(ctx, order.ID, "cancelled")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	got, err = s.orders.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDelivered)
	got, err = s.orders.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDelivered)

	pending, err := s.orders.ListByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = s.orders.ChangeStatus(ctx, uuid.NewString(), model.StatusPaid)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	_, err = s.orders.MarkDelivered(ctx, uuid.NewString())
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestOrderService_Search(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Brigadeiro", "2.50")

	for _, name := range []string{"Maria", "mariana", "JOSÉ", "JOÃO"} {
		_, err := s.orders.Create(ctx, service.CreateOrderInput{RecipeID: recipe.ID, CustomerName: name, Quantity: 1})
		require.NoError(t, err)
	}

	got, err := s.orders.Search(ctx, "  MARIA ")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.orders.Search(ctx, "josé")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "JOSÉ", got[0].CustomerName)

	got, err = s.orders.Search(ctx, "joão")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.orders.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOrderService_DeliveryWindowBoundary(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Bolo", "40.00")

	// 2024-05-10 00:00 São Paulo
	boundary := ts("2024-05-10T03:00:00Z")
	order, err := s.orders.Create(ctx, service.CreateOrderInput{
		RecipeID: recipe.ID, CustomerName: "Ana", Quantity: 1, DeliveryDate: &boundary,
	})
	require.NoError(t, err)

	today, err := s.orders.ListDeliveriesOn(ctx, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, order.ID, today[0].ID)

	yesterday, err := s.orders.ListDeliveriesOn(ctx, "2024-05-09")
	require.NoError(t, err)
	assert.Empty(t, yesterday)

	_, err = s.orders.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)
	today, err = s.orders.ListDeliveriesOn(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.Empty(t, today)

	_, err = s.orders.ListDeliveriesOn(ctx, "10/05/2024")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestOrderService_ListCreatedOn(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	recipe := newRecipe(t, s, "Bolo", "40.00")

	insert := func(at time.Time) string {
		o := &model.Order{
			ID: uuid.NewString(), CustomerName: "x", Quantity: 1,
			TotalAmount: recipe.Price, Status: model.StatusPending,
			RecipeID: recipe.ID, CreatedAt: at,
		}
		require.NoError(t, s.db.Omit("Recipe").Create(o).Error)
		return o.ID
	}

	insert(ts("2024-05-10T02:59:59Z")) // 09/05 23:59 local
	inDay := insert(ts("2024-05-10T23:00:00Z"))
	insert(ts("2024-05-11T03:00:00Z"))

	got, err := s.orders.ListCreatedOn(ctx, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inDay, got[0].ID)

	undelivered, err := s.orders.ListPendingDeliveries(ctx)
	require.NoError(t, err)
	assert.Len(t, undelivered, 3)
}
