package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dtroode/sympathy-server/internal/geo"
	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.CandidateFinder = (*Candidates)(nil)

// Candidates is the candidate query engine.
type Candidates struct {
	profiles model.ProfileStore
	logger   *logger.Logger
}

func NewCandidates(profiles model.ProfileStore, logger *logger.Logger) *Candidates {
	return &Candidates{
		profiles: profiles,
		logger:   logger,
	}
}

// Find returns profiles matching every present filter, ordered by creation time.
//
// A non-empty Email bypasses every other filter and the ordering and yields at most one profile.
// A distance filter requires an authenticated requester with a position; profiles without a
// position are dropped from distance-filtered results. Distance filtering runs after the store
// has sorted the rows and keeps their order.
func (s *Candidates) Find(ctx context.Context, requester model.Requester, query model.CandidateQuery) ([]model.Profile, error) {
	if query.Email != "" {
		return s.findByEmail(ctx, query.Email)
	}

	if err := validateQuery(&query); err != nil {
		return nil, err
	}

	var origin *model.Position
	if query.MaxDistanceKm != nil {
		pos, err := s.requesterPosition(ctx, requester)
		if err != nil {
			return nil, err
		}
		origin = pos
	}

	profiles, err := s.profiles.List(ctx, query.Filter())
	if err != nil {
		s.logger.Error("Candidates service: failed to list profiles",
			"requester", requester.String(),
			"error", err.Error())
		return nil, dependencyError("failed to list profiles", err)
	}

	if origin == nil {
		return profiles, nil
	}

	maxKm := *query.MaxDistanceKm
	nearby := make([]model.Profile, 0, len(profiles))
	for _, p := range profiles {
		if !p.HasPosition() {
			continue
		}
		if geo.Within(*origin, *p.Position, maxKm) {
			nearby = append(nearby, p)
		}
	}

	s.logger.Debug("Candidates service: distance filter applied",
		"requester", requester.String(),
		"max_km", maxKm,
		"before", len(profiles),
		"after", len(nearby))

	return nearby, nil
}

func (s *Candidates) findByEmail(ctx context.Context, email string) ([]model.Profile, error) {
	p, err := s.profiles.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return []model.Profile{}, nil
	}
	if err != nil {
		s.logger.Error("Candidates service: failed to get profile by email",
			"error", err.Error())
		return nil, dependencyError("failed to get profile by email", err)
	}
	return []model.Profile{p}, nil
}

func (s *Candidates) requesterPosition(ctx context.Context, requester model.Requester) (*model.Position, error) {
	id, ok := requester.ID()
	if !ok {
		return nil, fmt.Errorf("%w: distance filter requires authentication", model.ErrUnauthenticated)
	}

	me, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: requester profile does not exist", model.ErrUnauthenticated)
	}
	if err != nil {
		return nil, dependencyError("failed to get requester profile", err)
	}

	if !me.HasPosition() {
		return nil, fmt.Errorf("%w: requester has no position", model.ErrPreconditionFailed)
	}
	return me.Position, nil
}

// validateQuery normalizes the sort order and rejects malformed filters.
func validateQuery(query *model.CandidateQuery) error {
	sort, err := model.ParseSortOrder(string(query.Sort))
	if err != nil {
		return err
	}
	query.Sort = sort

	if query.Gender != "" && !query.Gender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", model.ErrInvalidArgument, query.Gender)
	}
	if d := query.MaxDistanceKm; d != nil && (math.IsNaN(*d) || *d < 0) {
		return fmt.Errorf("%w: distance must not be negative", model.ErrInvalidArgument)
	}
	return nil
}
