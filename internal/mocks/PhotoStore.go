package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PhotoStore is a mock of model.PhotoStore.
type PhotoStore struct {
	mock.Mock
}

func (_m *PhotoStore) Store(ctx context.Context, profileID uuid.UUID, raw []byte) (string, error) {
	ret := _m.Called(ctx, profileID, raw)
	return ret.String(0), ret.Error(1)
}

func (_m *PhotoStore) Remove(ctx context.Context, ref string) error {
	return _m.Called(ctx, ref).Error(0)
}

func NewPhotoStore(t TestingT) *PhotoStore {
	m := &PhotoStore{}
	register(t, &m.Mock)
	return m
}
