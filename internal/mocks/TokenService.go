package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TokenService is a mock of handler.TokenService.
type TokenService struct {
	mock.Mock
}

func (_m *TokenService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	ret := _m.Called(ctx, refreshToken)
	return ret.String(0), ret.String(1), ret.Error(2)
}

func (_m *TokenService) RevokeByToken(ctx context.Context, refreshToken string) error {
	return _m.Called(ctx, refreshToken).Error(0)
}

func NewTokenService(t TestingT) *TokenService {
	m := &TokenService{}
	register(t, &m.Mock)
	return m
}
