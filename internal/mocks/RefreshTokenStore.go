package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func (_m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	return _m.Called(ctx, token).Error(0)
}

func (_m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ret := _m.Called(ctx, jti)
	return ret.Get(0).(model.RefreshToken), ret.Error(1)
}

func (_m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	return _m.Called(ctx, jti).Error(0)
}

func (_m *RefreshTokenStore) RevokeAllByProfile(ctx context.Context, profileID uuid.UUID) error {
	return _m.Called(ctx, profileID).Error(0)
}

func NewRefreshTokenStore(t TestingT) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	register(t, &m.Mock)
	return m
}
