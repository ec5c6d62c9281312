package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/model"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	GetByID(ctx context.Context, id string) (*model.Recipe, error)
	ListActive(ctx context.Context) ([]*model.Recipe, error)
	// Update 仅写入 fields 中的列
	Update(ctx context.Context, id string, fields map[string]any) error
	Deactivate(ctx context.Context, id string) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepository{db: db} }

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListActive(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("title").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]any{"is_active": false})
}
