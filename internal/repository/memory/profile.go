package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	s *Store
}

func (r *ProfileRepository) Create(_ context.Context, profile model.Profile) (model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if _, ok := r.s.emails[profile.Email]; ok {
		return model.Profile{}, model.ErrConflict
	}
	if _, ok := r.s.profiles[profile.ID]; ok {
		return model.Profile{}, model.ErrConflict
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = profile.CreatedAt

	stored := cloneProfile(profile)
	r.s.profiles[stored.ID] = stored
	r.s.emails[stored.Email] = stored.ID

	return cloneProfile(stored), nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id uuid.UUID) (model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepository) GetByEmail(_ context.Context, email string) (model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	return cloneProfile(r.s.profiles[id]), nil
}

func (r *ProfileRepository) List(_ context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	first := strings.ToLower(filter.FirstName)
	last := strings.ToLower(filter.LastName)

	result := make([]model.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if first != "" && !strings.Contains(strings.ToLower(p.FirstName), first) {
			continue
		}
		if last != "" && !strings.Contains(strings.ToLower(p.LastName), last) {
			continue
		}
		if filter.CreatedAt != nil && !p.CreatedAt.Equal(*filter.CreatedAt) {
			continue
		}
		result = append(result, cloneProfile(p))
	}

	desc := filter.Sort == model.SortDesc
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		cmp := bytes.Compare(a.ID[:], b.ID[:])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return result, nil
}
