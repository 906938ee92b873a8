package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// ProfileService is a mock of handler.ProfileService.
type ProfileService struct {
	mock.Mock
}

func (_m *ProfileService) Me(ctx context.Context, profileID uuid.UUID) (model.Profile, error) {
	ret := _m.Called(ctx, profileID)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func NewProfileService(t TestingT) *ProfileService {
	m := &ProfileService{}
	register(t, &m.Mock)
	return m
}
