package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.LikeStore = (*LikeRepository)(nil)

type LikeRepository struct {
	db *Connection
}

func NewLikeRepository(db *Connection) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Exists(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM likes WHERE source_id = $1 AND target_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, sourceID, targetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

func (r *LikeRepository) Reciprocal(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	return r.Exists(ctx, targetID, sourceID)
}

func (r *LikeRepository) DailyCount(ctx context.Context, sourceID uuid.UUID, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM likes WHERE source_id = $1 AND created_at >= $2`

	var count int
	if err := r.db.QueryRow(ctx, query, sourceID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// Record locks the source profile row for the duration of the transaction so that
// concurrent likes from the same source observe each other's inserts when counting.
// FOR NO KEY UPDATE does not conflict with the key-share locks taken by foreign keys,
// so two profiles liking each other at once do not block on one another.
func (r *LikeRepository) Record(ctx context.Context, like model.Like, dailyLimit int, since time.Time) (model.Like, error) {
	const (
		lockQuery   = `SELECT id FROM profiles WHERE id = $1 FOR NO KEY UPDATE`
		countQuery  = `SELECT COUNT(*) FROM likes WHERE source_id = $1 AND created_at >= $2`
		insertQuery = `
            INSERT INTO likes (id, source_id, target_id, created_at)
            VALUES ($1, $2, $3, $4)
            RETURNING id, source_id, target_id, created_at
        `
	)

	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}

	var saved model.Like
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		var locked uuid.UUID
		if err := tx.QueryRow(ctx, lockQuery, like.SourceID).Scan(&locked); err != nil {
			return fmt.Errorf("failed to lock source profile: %w", mapError(err))
		}

		var count int
		if err := tx.QueryRow(ctx, countQuery, like.SourceID, since).Scan(&count); err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}
		if count >= dailyLimit {
			return model.ErrQuotaExceeded
		}

		err = tx.QueryRow(ctx, insertQuery, like.ID, like.SourceID, like.TargetID, like.CreatedAt).
			Scan(&saved.ID, &saved.SourceID, &saved.TargetID, &saved.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert like: %w", mapError(err))
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit like: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrQuotaExceeded) {
			return model.Like{}, err
		}
		return model.Like{}, fmt.Errorf("failed to record like: %w", err)
	}

	return saved, nil
}

func (r *LikeRepository) ListMatches(ctx context.Context, profileID uuid.UUID) ([]model.Match, error) {
	const query = `
        SELECT p.id, p.email, p.first_name, p.last_name, p.gender, p.photo_ref, p.latitude, p.longitude,
               p.password_hash, p.created_at, p.updated_at,
               GREATEST(outgoing.created_at, incoming.created_at) AS matched_at
        FROM likes outgoing
        JOIN likes incoming ON incoming.source_id = outgoing.target_id AND incoming.target_id = outgoing.source_id
        JOIN profiles p ON p.id = outgoing.target_id
        WHERE outgoing.source_id = $1
        ORDER BY matched_at DESC, p.id
    `

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]model.Match, 0)
	for rows.Next() {
		var matchedAt time.Time
		p, err := scanProfile(rows, &matchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, model.Match{Profile: p, MatchedAt: matchedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}
