package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/model"
)

type UserRepository interface {
	// Create 重名时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, user *model.User) error
	GetByName(ctx context.Context, name string) (*model.User, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
