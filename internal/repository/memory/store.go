// Package memory keeps profiles, likes and refresh tokens in process memory.
// It backs local development and tests and loses everything on restart.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/model"
)

type pair struct {
	source uuid.UUID
	target uuid.UUID
}

// Store is a thread-safe in-memory database shared by the repositories below.
type Store struct {
	mu sync.RWMutex

	profiles map[uuid.UUID]model.Profile
	emails   map[string]uuid.UUID
	likes    map[pair]model.Like
	tokens   map[string]model.RefreshToken
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[uuid.UUID]model.Profile),
		emails:   make(map[string]uuid.UUID),
		likes:    make(map[pair]model.Like),
		tokens:   make(map[string]model.RefreshToken),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{s: s}
}

func (s *Store) Likes() *LikeRepository {
	return &LikeRepository{s: s}
}

func (s *Store) RefreshTokens() *RefreshTokenRepository {
	return &RefreshTokenRepository{s: s}
}

func cloneProfile(p model.Profile) model.Profile {
	if p.Position != nil {
		pos := *p.Position
		p.Position = &pos
	}
	if p.PhotoRef != nil {
		ref := *p.PhotoRef
		p.PhotoRef = &ref
	}
	p.PasswordHash = append([]byte(nil), p.PasswordHash...)
	return p
}
