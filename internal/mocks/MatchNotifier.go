package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// MatchNotifier is a mock of model.MatchNotifier.
type MatchNotifier struct {
	mock.Mock
}

func (_m *MatchNotifier) NotifyMatch(ctx context.Context, a, b model.Profile) error {
	return _m.Called(ctx, a, b).Error(0)
}

func NewMatchNotifier(t TestingT) *MatchNotifier {
	m := &MatchNotifier{}
	register(t, &m.Mock)
	return m
}
