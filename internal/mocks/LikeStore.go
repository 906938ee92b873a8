package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// LikeStore is a mock of model.LikeStore.
type LikeStore struct {
	mock.Mock
}

func (_m *LikeStore) Exists(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, sourceID, targetID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *LikeStore) Reciprocal(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, sourceID, targetID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *LikeStore) DailyCount(ctx context.Context, sourceID uuid.UUID, since time.Time) (int, error) {
	ret := _m.Called(ctx, sourceID, since)
	return ret.Int(0), ret.Error(1)
}

func (_m *LikeStore) Record(ctx context.Context, like model.Like, dailyLimit int, since time.Time) (model.Like, error) {
	ret := _m.Called(ctx, like, dailyLimit, since)
	return ret.Get(0).(model.Like), ret.Error(1)
}

func (_m *LikeStore) ListMatches(ctx context.Context, profileID uuid.UUID) ([]model.Match, error) {
	ret := _m.Called(ctx, profileID)
	var out []model.Match
	if v := ret.Get(0); v != nil {
		out = v.([]model.Match)
	}
	return out, ret.Error(1)
}

func NewLikeStore(t TestingT) *LikeStore {
	m := &LikeStore{}
	register(t, &m.Mock)
	return m
}
