package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/sympathy-server/internal/mocks"
	"github.com/dtroode/sympathy-server/internal/model"
	"github.com/dtroode/sympathy-server/internal/repository/memory"
	"github.com/dtroode/sympathy-server/internal/testutil"
	"github.com/dtroode/sympathy-server/internal/token"
)

type authDeps struct {
	profiles   *mocks.ProfileStore
	candidates *mocks.CandidateFinder
	photos     *mocks.PhotoStore
	tokens     *TokenService
	svc        *Auth
}

func newAuthDeps(t *testing.T, withPhotos bool) authDeps {
	lg := testutil.MakeNoopLogger()
	d := authDeps{
		profiles:   mocks.NewProfileStore(t),
		candidates: mocks.NewCandidateFinder(t),
		tokens: NewTokenService(
			token.NewJWT("test-secret", time.Minute, time.Hour),
			memory.NewStore().RefreshTokens(),
			time.Hour,
			lg,
		),
	}

	var photos model.PhotoStore
	if withPhotos {
		d.photos = mocks.NewPhotoStore(t)
		photos = d.photos
	}
	d.svc = NewAuth(d.profiles, d.candidates, photos, d.tokens, lg)
	d.svc.hashCost = bcrypt.MinCost
	return d
}

func validRegistration() model.Registration {
	return model.Registration{
		Email:     " Ann@Example.com ",
		Password:  "password1",
		FirstName: "Ann",
		LastName:  "Lee",
		Gender:    model.GenderFemale,
		Position:  &model.Position{Latitude: 55.75, Longitude: 37.62},
	}
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	d := newAuthDeps(t, false)

	var stored model.Profile
	d.profiles.On("GetByEmail", ctx, "ann@example.com").Return(model.Profile{}, model.ErrNotFound).Once()
	d.profiles.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(model.Profile)
	}).Return(model.Profile{Email: "ann@example.com"}, nil).Once()

	got, err := d.svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got.Email)

	assert.Equal(t, "ann@example.com", stored.Email)
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.Nil(t, stored.PhotoRef)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("password1")))
	assert.Equal(t, time.UTC, stored.CreatedAt.Location())
	assert.Equal(t, stored.CreatedAt, stored.CreatedAt.Truncate(time.Microsecond))
}

func TestAuth_Register_WithPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the photo", func(t *testing.T) {
		d := newAuthDeps(t, true)
		reg := validRegistration()
		reg.Photo = []byte("raw image")

		d.profiles.On("GetByEmail", ctx, "ann@example.com").Return(model.Profile{}, model.ErrNotFound).Once()
		d.photos.On("Store", ctx, mock.Anything, reg.Photo).Return("photos/x.jpeg", nil).Once()
		d.profiles.On("Create", ctx, mock.MatchedBy(func(p model.Profile) bool {
			return p.PhotoRef != nil && *p.PhotoRef == "photos/x.jpeg"
		})).Return(model.Profile{}, nil).Once()

		_, err := d.svc.Register(ctx, reg)
		require.NoError(t, err)
	})

	t.Run("removes the photo when the profile is not saved", func(t *testing.T) {
		d := newAuthDeps(t, true)
		reg := validRegistration()
		reg.Photo = []byte("raw image")

		d.profiles.On("GetByEmail", ctx, "ann@example.com").Return(model.Profile{}, model.ErrNotFound).Once()
		d.photos.On("Store", ctx, mock.Anything, reg.Photo).Return("photos/x.jpeg", nil).Once()
		d.profiles.On("Create", ctx, mock.Anything).Return(model.Profile{}, model.ErrConflict).Once()
		d.photos.On("Remove", ctx, "photos/x.jpeg").Return(nil).Once()

		_, err := d.svc.Register(ctx, reg)
		require.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("rejected without object storage", func(t *testing.T) {
		d := newAuthDeps(t, false)
		reg := validRegistration()
		reg.Photo = []byte("raw image")
		d.profiles.On("GetByEmail", ctx, "ann@example.com").Return(model.Profile{}, model.ErrNotFound).Once()

		_, err := d.svc.Register(ctx, reg)
		require.ErrorIs(t, err, model.ErrInvalidArgument)
	})
}

func TestAuth_Register_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *model.Registration)
	}{
		{name: "malformed email", mutate: func(r *model.Registration) { r.Email = "not-an-email" }},
		{name: "short password", mutate: func(r *model.Registration) { r.Password = "short" }},
		{name: "long password", mutate: func(r *model.Registration) { r.Password = strings.Repeat("p", 73) }},
		{name: "unknown gender", mutate: func(r *model.Registration) { r.Gender = "robot" }},
		{name: "long name", mutate: func(r *model.Registration) { r.FirstName = strings.Repeat("я", 65) }},
		{name: "latitude out of range", mutate: func(r *model.Registration) { r.Position = &model.Position{Latitude: 91} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newAuthDeps(t, false)
			reg := validRegistration()
			tt.mutate(&reg)

			_, err := d.svc.Register(ctx, reg)
			require.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	d := newAuthDeps(t, false)
	d.profiles.On("GetByEmail", ctx, "ann@example.com").Return(model.Profile{ID: uuid.New()}, nil).Once()

	_, err := d.svc.Register(ctx, validRegistration())
	require.ErrorIs(t, err, model.ErrConflict)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	profile := model.Profile{ID: uuid.New(), Email: "ann@example.com", PasswordHash: hash}
	lookup := model.CandidateQuery{Email: "ann@example.com"}

	t.Run("success", func(t *testing.T) {
		d := newAuthDeps(t, false)
		d.candidates.On("Find", ctx, model.Anonymous(), lookup).Return([]model.Profile{profile}, nil).Once()

		session, err := d.svc.Login(ctx, "ANN@example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, profile.ID, session.Profile.ID)

		id, err := d.tokens.GetProfileID(ctx, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, id)
		assert.NotEmpty(t, session.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		d := newAuthDeps(t, false)
		d.candidates.On("Find", ctx, model.Anonymous(), lookup).Return([]model.Profile{profile}, nil).Once()

		_, err := d.svc.Login(ctx, "ann@example.com", "password2")
		require.ErrorIs(t, err, model.ErrUnauthenticated)
	})

	t.Run("unknown email", func(t *testing.T) {
		d := newAuthDeps(t, false)
		d.candidates.On("Find", ctx, model.Anonymous(), lookup).Return([]model.Profile{}, nil).Once()

		_, err := d.svc.Login(ctx, "ann@example.com", "password1")
		require.ErrorIs(t, err, model.ErrUnauthenticated)
	})

	t.Run("lookup failure", func(t *testing.T) {
		d := newAuthDeps(t, false)
		d.candidates.On("Find", ctx, model.Anonymous(), lookup).Return(nil, model.ErrDependencyFailure).Once()

		_, err := d.svc.Login(ctx, "ann@example.com", "password1")
		require.ErrorIs(t, err, model.ErrDependencyFailure)
	})
}

func TestAuth_Me(t *testing.T) {
	ctx := context.Background()
	d := newAuthDeps(t, false)
	id := uuid.New()

	d.profiles.On("GetByID", ctx, id).Return(model.Profile{ID: id}, nil).Once()
	got, err := d.svc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	d.profiles.On("GetByID", ctx, id).Return(model.Profile{}, model.ErrNotFound).Once()
	_, err = d.svc.Me(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
}
