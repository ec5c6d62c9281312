package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/repository"
)

type CreateRecipeInput struct {
	Title string
	Price decimal.Decimal
}

// UpdateRecipeInput nil 字段保持不变
type UpdateRecipeInput struct {
	Title *string
	Price *decimal.Decimal
}

// RecipeService 配方服务；删除为软删除
type RecipeService interface {
	Create(ctx context.Context, in CreateRecipeInput) (*model.Recipe, error)
	Get(ctx context.Context, id string) (*model.Recipe, error)
	List(ctx context.Context) ([]*model.Recipe, error)
	Update(ctx context.Context, id string, in UpdateRecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, id string) error
}

type recipeService struct {
	recipes repository.RecipeRepository
}

func NewRecipeService(recipes repository.RecipeRepository) RecipeService {
	return &recipeService{recipes: recipes}
}

func (s *recipeService) Create(ctx context.Context, in CreateRecipeInput) (*model.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidInput("title is required")
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		ID:       uuid.NewString(),
		Title:    title,
		Price:    in.Price.Round(2),
		IsActive: true,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, recipeErr(err)
	}
	return recipe, nil
}

func (s *recipeService) List(ctx context.Context) ([]*model.Recipe, error) {
	return s.recipes.ListActive(ctx)
}

func (s *recipeService) Update(ctx context.Context, id string, in UpdateRecipeInput) (*model.Recipe, error) {
	fields := make(map[string]any, 2)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, invalidInput("title must not be empty")
		}
		fields["title"] = title
	}
	if in.Price != nil {
		if err := checkPrice(*in.Price); err != nil {
			return nil, err
		}
		fields["price"] = in.Price.Round(2)
	}

	if len(fields) > 0 {
		if err := s.recipes.Update(ctx, id, fields); err != nil {
			return nil, recipeErr(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *recipeService) Delete(ctx context.Context, id string) error {
	return recipeErr(s.recipes.Deactivate(ctx, id))
}

func checkPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return invalidInput("price must not be negative")
	}
	if p.Round(2).GreaterThan(model.MaxRecipePrice) {
		return invalidInput("price must not exceed %s", model.Money(model.MaxRecipePrice))
	}
	return nil
}

func recipeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecipeNotFound
	}
	return err
}
