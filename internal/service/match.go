package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/metrics"
	"github.com/dtroode/sympathy-server/internal/model"
)

// Match is the match orchestrator: it validates and records likes and detects mutual matches.
type Match struct {
	profiles   model.ProfileStore
	likes      model.LikeStore
	notifier   model.MatchNotifier
	dailyLimit int
	now        func() time.Time
	logger     *logger.Logger
}

func NewMatch(
	profiles model.ProfileStore,
	likes model.LikeStore,
	notifier model.MatchNotifier,
	dailyLimit int,
	logger *logger.Logger,
) *Match {
	if dailyLimit <= 0 {
		dailyLimit = model.DefaultDailyLikeLimit
	}
	return &Match{
		profiles:   profiles,
		likes:      likes,
		notifier:   notifier,
		dailyLimit: dailyLimit,
		now:        time.Now,
		logger:     logger,
	}
}

// Like records a like from sourceID to targetID.
//
// Checks run in order and the first failure ends the request: self-like, target existence,
// daily quota, duplicate. The like is then written; the write re-checks the quota and the
// uniqueness atomically, so concurrent requests cannot exceed the limit. Reciprocity is
// checked only after the write succeeded. A failed notification does not fail the call;
// it is reported through LikeResult.NotificationErr.
func (s *Match) Like(ctx context.Context, sourceID, targetID uuid.UUID) (model.LikeResult, error) {
	result, err := s.like(ctx, sourceID, targetID)
	metrics.Likes.WithLabelValues(likeMetricLabel(result, err)).Inc()
	return result, err
}

func (s *Match) like(ctx context.Context, sourceID, targetID uuid.UUID) (model.LikeResult, error) {
	s.logger.Debug("Match service: processing like",
		"source_id", sourceID.String(),
		"target_id", targetID.String())

	if sourceID == targetID {
		return model.LikeResult{}, fmt.Errorf("%w: cannot like yourself", model.ErrInvalidOperation)
	}

	target, err := s.profiles.GetByID(ctx, targetID)
	if err != nil {
		return model.LikeResult{}, dependencyError("failed to get target profile", err)
	}

	source, err := s.profiles.GetByID(ctx, sourceID)
	if errors.Is(err, model.ErrNotFound) {
		return model.LikeResult{}, fmt.Errorf("%w: source profile does not exist", model.ErrUnauthenticated)
	}
	if err != nil {
		return model.LikeResult{}, dependencyError("failed to get source profile", err)
	}

	now := s.now().UTC()
	since := model.StartOfDayUTC(now)

	count, err := s.likes.DailyCount(ctx, sourceID, since)
	if err != nil {
		return model.LikeResult{}, dependencyError("failed to count likes", err)
	}
	if count >= s.dailyLimit {
		s.logger.Info("Match service: daily quota reached",
			"source_id", sourceID.String(),
			"count", count)
		return model.LikeResult{}, fmt.Errorf("%w: %d likes since %s", model.ErrQuotaExceeded, count, since.Format(time.DateOnly))
	}

	exists, err := s.likes.Exists(ctx, sourceID, targetID)
	if err != nil {
		return model.LikeResult{}, dependencyError("failed to check existing like", err)
	}
	if exists {
		return model.LikeResult{}, fmt.Errorf("%w: already liked", model.ErrConflict)
	}

	_, err = s.likes.Record(ctx, model.Like{
		ID:        uuid.New(),
		SourceID:  sourceID,
		TargetID:  targetID,
		CreatedAt: now,
	}, s.dailyLimit, since)
	if err != nil {
		s.logger.Error("Match service: failed to record like",
			"source_id", sourceID.String(),
			"target_id", targetID.String(),
			"error", err.Error())
		return model.LikeResult{}, dependencyError("failed to record like", err)
	}

	result := model.LikeResult{
		Outcome: model.LikeRecorded,
		Source:  source,
		Target:  target,
	}

	mutual, err := s.likes.Reciprocal(ctx, sourceID, targetID)
	if err != nil {
		// The like is durable at this point; keep the recorded outcome.
		s.logger.Error("Match service: failed to check reciprocity",
			"source_id", sourceID.String(),
			"target_id", targetID.String(),
			"error", err.Error())
		return result, nil
	}
	if !mutual {
		s.logger.Info("Match service: like recorded",
			"source_id", sourceID.String(),
			"target_id", targetID.String())
		return result, nil
	}

	result.Outcome = model.MutualMatch
	if err := s.notifier.NotifyMatch(ctx, source, target); err != nil {
		metrics.NotificationFailures.Inc()
		s.logger.Error("Match service: match recorded, notification failed",
			"source_id", sourceID.String(),
			"target_id", targetID.String(),
			"error", err.Error())
		result.NotificationErr = err
		return result, nil
	}

	s.logger.Info("Match service: mutual match",
		"source_id", sourceID.String(),
		"target_id", targetID.String())
	return result, nil
}

// Matches lists the profiles that share a mutual match with profileID, latest first.
func (s *Match) Matches(ctx context.Context, profileID uuid.UUID) ([]model.Match, error) {
	matches, err := s.likes.ListMatches(ctx, profileID)
	if err != nil {
		s.logger.Error("Match service: failed to list matches",
			"profile_id", profileID.String(),
			"error", err.Error())
		return nil, dependencyError("failed to list matches", err)
	}
	return matches, nil
}

func likeMetricLabel(result model.LikeResult, err error) string {
	switch {
	case err == nil:
		return string(result.Outcome)
	case errors.Is(err, model.ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
