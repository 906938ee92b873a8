package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

// TokenService issues, rotates and revokes token pairs.
// It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	now        func() time.Time
	logger     *logger.Logger
}

// NewTokenService creates a token service. refreshTTL is the stored expiry of
// refresh tokens and must match the manager's signing TTL.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *TokenService) Issue(ctx context.Context, profileID uuid.UUID) (accessToken string, refreshToken string, err error) {
	return s.issue(ctx, profileID, nil)
}

// Refresh validates the presented refresh token against its stored state,
// revokes it and issues a new pair.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (newAccess string, newRefresh string, err error) {
	profileID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", model.ErrForbidden, err)
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return "", "", fmt.Errorf("%w: unknown refresh token", model.ErrForbidden)
	}
	if err != nil {
		return "", "", dependencyError("failed to get refresh token", err)
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.Info("Token service: refresh rejected",
			"profile_id", profileID.String(),
			"jti", jti,
			"reason", err.Error())
		return "", "", fmt.Errorf("%w: %w", model.ErrForbidden, err)
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return "", "", dependencyError("failed to revoke old refresh token", err)
	}

	rotatedFrom := rt.JTI
	return s.issue(ctx, profileID, &rotatedFrom)
}

func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrForbidden, err)
	}
	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return dependencyError("failed to revoke refresh token", err)
	}
	return nil
}

func (s *TokenService) RevokeAllForProfile(ctx context.Context, profileID uuid.UUID) error {
	return s.store.RevokeAllByProfile(ctx, profileID)
}

// GetProfileID resolves an access token. Any parse failure is ErrForbidden.
func (s *TokenService) GetProfileID(_ context.Context, token string) (uuid.UUID, error) {
	id, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", model.ErrForbidden, err)
	}
	return id, nil
}

func (s *TokenService) issue(ctx context.Context, profileID uuid.UUID, rotatedFrom *string) (string, string, error) {
	access, err := s.manager.GenerateAccessToken(profileID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(profileID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		ProfileID:      profileID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, rt); err != nil {
		return "", "", dependencyError("persist refresh", err)
	}

	return access, refresh, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
