package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// MatchService is a mock of handler.MatchService.
type MatchService struct {
	mock.Mock
}

func (_m *MatchService) Like(ctx context.Context, sourceID, targetID uuid.UUID) (model.LikeResult, error) {
	ret := _m.Called(ctx, sourceID, targetID)
	return ret.Get(0).(model.LikeResult), ret.Error(1)
}

func (_m *MatchService) Matches(ctx context.Context, profileID uuid.UUID) ([]model.Match, error) {
	ret := _m.Called(ctx, profileID)
	var out []model.Match
	if v := ret.Get(0); v != nil {
		out = v.([]model.Match)
	}
	return out, ret.Error(1)
}

func NewMatchService(t TestingT) *MatchService {
	m := &MatchService{}
	register(t, &m.Mock)
	return m
}
