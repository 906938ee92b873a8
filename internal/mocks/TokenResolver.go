package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TokenResolver is a mock of middleware.TokenResolver.
type TokenResolver struct {
	mock.Mock
}

func (_m *TokenResolver) GetProfileID(ctx context.Context, token string) (uuid.UUID, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func NewTokenResolver(t TestingT) *TokenResolver {
	m := &TokenResolver{}
	register(t, &m.Mock)
	return m
}
