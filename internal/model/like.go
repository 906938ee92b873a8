package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultDailyLikeLimit is the number of likes a profile may issue per UTC day.
const DefaultDailyLikeLimit = 5

// LikeStore is the match ledger: an append-only record of directed likes.
type LikeStore interface {
	// Exists reports whether source already liked target.
	Exists(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error)
	// Reciprocal reports whether target liked source.
	Reciprocal(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error)
	// DailyCount counts likes issued by source at or after since.
	DailyCount(ctx context.Context, sourceID uuid.UUID, since time.Time) (int, error)
	// Record inserts the like unless source already issued dailyLimit likes since the given time.
	// The quota check and the insert are atomic per source.
	Record(ctx context.Context, like Like, dailyLimit int, since time.Time) (Like, error)
	// ListMatches returns profiles that share likes in both directions with profileID.
	ListMatches(ctx context.Context, profileID uuid.UUID) ([]Match, error)
}

// Like is a directed expression of interest from one profile to another.
type Like struct {
	ID        uuid.UUID
	SourceID  uuid.UUID
	TargetID  uuid.UUID
	CreatedAt time.Time
}

// Match is a counterpart in a mutual match. MatchedAt is the time of the later like.
type Match struct {
	Profile   Profile
	MatchedAt time.Time
}

// LikeOutcome tells whether a like completed a mutual match.
type LikeOutcome string

const (
	LikeRecorded LikeOutcome = "recorded"
	MutualMatch  LikeOutcome = "mutual_match"
)

// LikeResult is the outcome of a successful like.
// NotificationErr is set when the match was recorded but notifying the parties failed.
type LikeResult struct {
	Outcome         LikeOutcome
	Source          Profile
	Target          Profile
	NotificationErr error
}

// PartialFailure reports whether the like succeeded but a side effect did not.
func (r LikeResult) PartialFailure() bool {
	return r.NotificationErr != nil
}

// StartOfDayUTC returns midnight UTC of the day t falls on.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MatchNotifier delivers mutual-match notifications to both parties.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, a, b Profile) error
}
