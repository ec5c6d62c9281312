package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/repository"
)

// AuthService 注册与口令校验；不签发会话或令牌
type AuthService interface {
	Register(ctx context.Context, name, password string) (*model.User, error)
	Authenticate(ctx context.Context, name, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
	cost  int
}

func NewAuthService(users repository.UserRepository, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, cost: bcryptCost}
}

func (s *authService) Register(ctx context.Context, name, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, invalidInput("name and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &model.User{ID: uuid.NewString(), Name: name, PasswordHash: string(hash)}
	// 唯一性交给数据库约束判断，不做预查询
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, name, password string) (*model.User, error) {
	user, err := s.users.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
