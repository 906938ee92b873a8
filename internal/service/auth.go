package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
	maxNameLength    = 64
)

// Auth registers profiles and opens sessions.
type Auth struct {
	profiles     model.ProfileStore
	candidates   model.CandidateFinder
	photos       model.PhotoStore
	tokenService *TokenService
	hashCost     int
	now          func() time.Time
	logger       *logger.Logger
}

// NewAuth creates the auth service. candidates resolves logins through the email lookup
// and photos may be nil when no object storage is configured.
func NewAuth(
	profiles model.ProfileStore,
	candidates model.CandidateFinder,
	photos model.PhotoStore,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		profiles:     profiles,
		candidates:   candidates,
		photos:       photos,
		tokenService: tokenService,
		hashCost:     bcrypt.DefaultCost,
		now:          time.Now,
		logger:       logger,
	}
}

func (a *Auth) Register(ctx context.Context, params model.Registration) (model.Profile, error) {
	params.Email = strings.TrimSpace(strings.ToLower(params.Email))

	a.logger.Debug("Auth service: starting registration",
		"email", params.Email)

	if err := validateRegistration(params); err != nil {
		return model.Profile{}, err
	}

	_, err := a.profiles.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.Profile{}, fmt.Errorf("%w: email %s is already registered", model.ErrConflict, params.Email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, dependencyError("failed to get profile by email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.hashCost)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := model.Profile{
		ID:           uuid.New(),
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Gender:       params.Gender,
		Position:     params.Position,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC().Truncate(time.Microsecond),
	}

	if len(params.Photo) > 0 {
		if a.photos == nil {
			return model.Profile{}, fmt.Errorf("%w: photo uploads are disabled", model.ErrInvalidArgument)
		}
		ref, err := a.photos.Store(ctx, profile.ID, params.Photo)
		if err != nil {
			return model.Profile{}, err
		}
		profile.PhotoRef = &ref
	}

	saved, err := a.profiles.Create(ctx, profile)
	if err != nil {
		a.logger.Error("Auth service: failed to create profile",
			"email", params.Email,
			"error", err.Error())
		if profile.PhotoRef != nil {
			if rmErr := a.photos.Remove(ctx, *profile.PhotoRef); rmErr != nil {
				a.logger.Warn("Auth service: failed to remove orphaned photo",
					"ref", *profile.PhotoRef,
					"error", rmErr.Error())
			}
		}
		return model.Profile{}, dependencyError("failed to create profile", err)
	}

	a.logger.Info("Auth service: registration completed",
		"email", params.Email,
		"profile_id", saved.ID.String())

	return saved, nil
}

// Login checks the credentials and issues a token pair.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return model.Session{}, fmt.Errorf("%w: email is required", model.ErrInvalidArgument)
	}

	found, err := a.candidates.Find(ctx, model.Anonymous(), model.CandidateQuery{Email: email})
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to look up profile: %w", err)
	}
	if len(found) == 0 {
		a.logger.Info("Auth service: login for unknown email",
			"email", email)
		return model.Session{}, fmt.Errorf("%w: invalid credentials", model.ErrUnauthenticated)
	}
	profile := found[0]

	if err := bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: wrong password",
			"email", email)
		return model.Session{}, fmt.Errorf("%w: invalid credentials", model.ErrUnauthenticated)
	}

	access, refresh, err := a.tokenService.Issue(ctx, profile.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"profile_id", profile.ID.String(),
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"profile_id", profile.ID.String())

	return model.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Profile:      profile,
	}, nil
}

// Me returns the caller's own profile.
func (a *Auth) Me(ctx context.Context, profileID uuid.UUID) (model.Profile, error) {
	p, err := a.profiles.GetByID(ctx, profileID)
	if err != nil {
		return model.Profile{}, dependencyError("failed to get profile", err)
	}
	return p, nil
}

func validateRegistration(p model.Registration) error {
	switch {
	case !strfmt.IsEmail(p.Email):
		return fmt.Errorf("%w: malformed email", model.ErrInvalidArgument)
	case len(p.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidArgument, minPasswordLength)
	case len(p.Password) > maxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", model.ErrInvalidArgument, maxPasswordBytes)
	case !p.Gender.Valid():
		return fmt.Errorf("%w: unknown gender %q", model.ErrInvalidArgument, p.Gender)
	case utf8.RuneCountInString(p.FirstName) > maxNameLength || utf8.RuneCountInString(p.LastName) > maxNameLength:
		return fmt.Errorf("%w: names must be at most %d characters", model.ErrInvalidArgument, maxNameLength)
	case p.Position != nil && !p.Position.Valid():
		return fmt.Errorf("%w: coordinates out of range", model.ErrInvalidArgument)
	}
	return nil
}
