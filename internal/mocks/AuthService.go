package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// AuthService is a mock of handler.AuthService.
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Register(ctx context.Context, params model.Registration) (model.Profile, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *AuthService) Login(ctx context.Context, email, password string) (model.Session, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func NewAuthService(t TestingT) *AuthService {
	m := &AuthService{}
	register(t, &m.Mock)
	return m
}
