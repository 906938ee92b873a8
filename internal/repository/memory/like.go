package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.LikeStore = (*LikeRepository)(nil)

type LikeRepository struct {
	s *Store
}

func (r *LikeRepository) Exists(_ context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.likes[pair{source: sourceID, target: targetID}]
	return ok, nil
}

func (r *LikeRepository) Reciprocal(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	return r.Exists(ctx, targetID, sourceID)
}

func (r *LikeRepository) DailyCount(_ context.Context, sourceID uuid.UUID, since time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.countSince(sourceID, since), nil
}

// Record holds the write lock across the count and the insert.
func (r *LikeRepository) Record(ctx context.Context, like model.Like, dailyLimit int, since time.Time) (model.Like, error) {
	if err := ctx.Err(); err != nil {
		return model.Like{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if like.SourceID == like.TargetID {
		return model.Like{}, model.ErrInvalidOperation
	}
	if _, ok := r.s.profiles[like.SourceID]; !ok {
		return model.Like{}, model.ErrNotFound
	}
	if _, ok := r.s.profiles[like.TargetID]; !ok {
		return model.Like{}, model.ErrNotFound
	}
	if r.s.countSince(like.SourceID, since) >= dailyLimit {
		return model.Like{}, model.ErrQuotaExceeded
	}

	key := pair{source: like.SourceID, target: like.TargetID}
	if _, ok := r.s.likes[key]; ok {
		return model.Like{}, model.ErrConflict
	}

	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}
	r.s.likes[key] = like

	return like, nil
}

func (r *LikeRepository) ListMatches(_ context.Context, profileID uuid.UUID) ([]model.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]model.Match, 0)
	for key, outgoing := range r.s.likes {
		if key.source != profileID {
			continue
		}
		incoming, ok := r.s.likes[pair{source: key.target, target: profileID}]
		if !ok {
			continue
		}
		matchedAt := outgoing.CreatedAt
		if incoming.CreatedAt.After(matchedAt) {
			matchedAt = incoming.CreatedAt
		}
		matches = append(matches, model.Match{
			Profile:   cloneProfile(r.s.profiles[key.target]),
			MatchedAt: matchedAt,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchedAt.After(matches[j].MatchedAt)
	})
	return matches, nil
}

// countSince must be called with the lock held.
func (s *Store) countSince(sourceID uuid.UUID, since time.Time) int {
	count := 0
	for key, like := range s.likes {
		if key.source == sourceID && !like.CreatedAt.Before(since) {
			count++
		}
	}
	return count
}
