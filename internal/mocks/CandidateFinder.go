package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sympathy-server/internal/model"
)

// CandidateFinder is a mock of model.CandidateFinder.
type CandidateFinder struct {
	mock.Mock
}

func (_m *CandidateFinder) Find(ctx context.Context, requester model.Requester, query model.CandidateQuery) ([]model.Profile, error) {
	ret := _m.Called(ctx, requester, query)
	var out []model.Profile
	if v := ret.Get(0); v != nil {
		out = v.([]model.Profile)
	}
	return out, ret.Error(1)
}

func NewCandidateFinder(t TestingT) *CandidateFinder {
	m := &CandidateFinder{}
	register(t, &m.Mock)
	return m
}
