package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/service"
)

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()

	user, err := s.auth.Register(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	got, err := s.auth.Authenticate(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.auth.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = s.auth.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAuthService_DuplicateName(t *testing.T) {
	s := newServices(t, 10, nil)
	ctx := context.Background()

	_, err := s.auth.Register(ctx, "admin", "one")
	require.NoError(t, err)
	_, err = s.auth.Register(ctx, "admin", "two")
	assert.ErrorIs(t, err, service.ErrUserExists)

	var count int64
	require.NoError(t, s.db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = s.auth.Authenticate(ctx, "admin", "one")
	assert.NoError(t, err)
}

func TestAuthService_RegisterRequiresCredentials(t *testing.T) {
	s := newServices(t, 10, nil)

	_, err := s.auth.Register(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = s.auth.Register(context.Background(), "admin", "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
