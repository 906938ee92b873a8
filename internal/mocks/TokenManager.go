package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) GenerateAccessToken(profileID uuid.UUID) (string, error) {
	ret := _m.Called(profileID)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) GenerateRefreshToken(profileID uuid.UUID) (string, string, error) {
	ret := _m.Called(profileID)
	return ret.String(0), ret.String(1), ret.Error(2)
}

func (_m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.String(1), ret.Error(2)
}

func NewTokenManager(t TestingT) *TokenManager {
	m := &TokenManager{}
	register(t, &m.Mock)
	return m
}
