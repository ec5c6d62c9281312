package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bakery-api/internal/service"
)

func TestRecipeService_Lifecycle(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()

	recipe, err := s.recipes.Create(ctx, service.CreateRecipeInput{Title: " Bolo ", Price: decimal.RequireFromString("45.999")})
	require.NoError(t, err)
	assert.Equal(t, "Bolo", recipe.Title)
	assert.Equal(t, "46.00", recipe.Price.StringFixed(2))
	assert.True(t, recipe.IsActive)

	price := decimal.RequireFromString("50.5")
	updated, err := s.recipes.Update(ctx, recipe.ID, service.UpdateRecipeInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Bolo", updated.Title)
	assert.Equal(t, "50.50", updated.Price.StringFixed(2))

	title := "Bolo de fubá"
	updated, err = s.recipes.Update(ctx, recipe.ID, service.UpdateRecipeInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "50.50", updated.Price.StringFixed(2))

	require.NoError(t, s.recipes.Delete(ctx, recipe.ID))
	list, err := s.recipes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.recipes.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestRecipeService_Errors(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()
	missing := uuid.NewString()

	_, err := s.recipes.Get(ctx, missing)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	price := decimal.NewFromInt(1)
	_, err = s.recipes.Update(ctx, missing, service.UpdateRecipeInput{Price: &price})
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	assert.ErrorIs(t, s.recipes.Delete(ctx, missing), service.ErrRecipeNotFound)

	_, err = s.recipes.Create(ctx, service.CreateRecipeInput{Title: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = s.recipes.Create(ctx, service.CreateRecipeInput{Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.recipes.Create(ctx, service.CreateRecipeInput{Title: "x", Price: decimal.RequireFromString("100000000")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	recipe, err := s.recipes.Create(ctx, service.CreateRecipeInput{Title: "x", Price: decimal.RequireFromString("99999999.99")})
	require.NoError(t, err)
	tooHigh := decimal.RequireFromString("99999999.999")
	_, err = s.recipes.Update(ctx, recipe.ID, service.UpdateRecipeInput{Price: &tooHigh})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
