package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func (_m *ContextManager) SetProfileIDToContext(ctx context.Context, profileID uuid.UUID) context.Context {
	return _m.Called(ctx, profileID).Get(0).(context.Context)
}

func (_m *ContextManager) GetProfileIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uuid.UUID), ret.Bool(1)
}

func NewContextManager(t TestingT) *ContextManager {
	m := &ContextManager{}
	register(t, &m.Mock)
	return m
}
