package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// ProfileStore is a mock of model.ProfileStore.
type ProfileStore struct {
	mock.Mock
}

func (_m *ProfileStore) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	ret := _m.Called(ctx, profile)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *ProfileStore) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *ProfileStore) List(ctx context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	ret := _m.Called(ctx, filter)
	var out []model.Profile
	if v := ret.Get(0); v != nil {
		out = v.([]model.Profile)
	}
	return out, ret.Error(1)
}

func NewProfileStore(t TestingT) *ProfileStore {
	m := &ProfileStore{}
	register(t, &m.Mock)
	return m
}
