package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

func (_m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	return _m.Called(ctx, key, reader).Error(0)
}

func (_m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)
	var out io.ReadCloser
	if v := ret.Get(0); v != nil {
		out = v.(io.ReadCloser)
	}
	return out, ret.Error(1)
}

func (_m *Storage) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

func (_m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func NewStorage(t TestingT) *Storage {
	m := &Storage{}
	register(t, &m.Mock)
	return m
}
