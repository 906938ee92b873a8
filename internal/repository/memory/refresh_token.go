package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	s *Store
}

func (r *RefreshTokenRepository) Create(_ context.Context, token model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[token.JTI]; ok {
		return model.ErrConflict
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	now := time.Now().UTC()
	token.CreatedAt, token.UpdatedAt = now, now
	r.s.tokens[token.JTI] = token
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	token, ok := r.s.tokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return token, nil
}

func (r *RefreshTokenRepository) RevokeByJTI(_ context.Context, jti string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	token, ok := r.s.tokens[jti]
	if !ok || token.RevokedAt != nil {
		return nil
	}
	r.s.tokens[jti] = revoke(token)
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByProfile(_ context.Context, profileID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for jti, token := range r.s.tokens {
		if token.ProfileID == profileID && token.RevokedAt == nil {
			r.s.tokens[jti] = revoke(token)
		}
	}
	return nil
}

func revoke(token model.RefreshToken) model.RefreshToken {
	now := time.Now().UTC()
	token.RevokedAt = &now
	token.UpdatedAt = now
	return token
}
