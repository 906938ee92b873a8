//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/sympathy-server/internal/model"
	repo "github.com/dtroode/sympathy-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "sympathy_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/sympathy_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func createProfile(t *testing.T, pr *repo.ProfileRepository, first string, gender model.Gender) model.Profile {
	t.Helper()
	p, err := pr.Create(context.Background(), model.Profile{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		FirstName:    first,
		LastName:     "Tester",
		Gender:       gender,
		Position:     &model.Position{Latitude: 55.75, Longitude: 37.61},
		PasswordHash: []byte("hash"),
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	})
	require.NoError(t, err)
	return p
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	pr := repo.NewProfileRepository(connect(t))

	p := createProfile(t, pr, "Zelda", model.GenderFemale)
	require.NotNil(t, p.Position)
	require.InDelta(t, 55.75, p.Position.Latitude, 1e-9)

	t.Run("get by id and email", func(t *testing.T) {
		byID, err := pr.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, p.Email, byID.Email)

		byEmail, err := pr.GetByEmail(ctx, p.Email)
		require.NoError(t, err)
		require.Equal(t, p.ID, byEmail.ID)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := pr.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := p
		dup.ID = uuid.New()
		_, err := pr.Create(ctx, dup)
		require.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("profile without position", func(t *testing.T) {
		saved, err := pr.Create(ctx, model.Profile{
			Email:        uuid.NewString() + "@example.com",
			Gender:       model.GenderMale,
			PasswordHash: []byte("hash"),
		})
		require.NoError(t, err)
		require.Nil(t, saved.Position)
	})

	t.Run("list filters by name substring case-insensitively", func(t *testing.T) {
		list, err := pr.List(ctx, model.ProfileFilter{FirstName: "ELD", Gender: model.GenderFemale})
		require.NoError(t, err)
		require.NotEmpty(t, list)
		for _, got := range list {
			require.Contains(t, got.FirstName, "eld")
		}
	})

	t.Run("list by creation time", func(t *testing.T) {
		list, err := pr.List(ctx, model.ProfileFilter{CreatedAt: &p.CreatedAt})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, p.ID, list[0].ID)
	})
}

func TestLikeRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	pr := repo.NewProfileRepository(conn)
	lr := repo.NewLikeRepository(conn)
	since := model.StartOfDayUTC(time.Now())

	a := createProfile(t, pr, "Alice", model.GenderFemale)
	b := createProfile(t, pr, "Bob", model.GenderMale)

	t.Run("record and detect reciprocity", func(t *testing.T) {
		_, err := lr.Record(ctx, model.Like{SourceID: a.ID, TargetID: b.ID}, 5, since)
		require.NoError(t, err)

		ok, err := lr.Exists(ctx, a.ID, b.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = lr.Reciprocal(ctx, a.ID, b.ID)
		require.NoError(t, err)
		require.False(t, ok)

		_, err = lr.Record(ctx, model.Like{SourceID: b.ID, TargetID: a.ID}, 5, since)
		require.NoError(t, err)

		ok, err = lr.Reciprocal(ctx, a.ID, b.ID)
		require.NoError(t, err)
		require.True(t, ok)

		matches, err := lr.ListMatches(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		require.Equal(t, b.ID, matches[0].Profile.ID)
	})

	t.Run("duplicate like conflicts", func(t *testing.T) {
		_, err := lr.Record(ctx, model.Like{SourceID: a.ID, TargetID: b.ID}, 5, since)
		require.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("self like rejected", func(t *testing.T) {
		_, err := lr.Record(ctx, model.Like{SourceID: a.ID, TargetID: a.ID}, 5, since)
		require.ErrorIs(t, err, model.ErrInvalidOperation)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := lr.Record(ctx, model.Like{SourceID: a.ID, TargetID: uuid.New()}, 5, since)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("likes from previous days are not counted", func(t *testing.T) {
		c := createProfile(t, pr, "Carol", model.GenderFemale)
		_, err := lr.Record(ctx, model.Like{SourceID: c.ID, TargetID: a.ID, CreatedAt: since.Add(-time.Hour)}, 5, since.Add(-24*time.Hour))
		require.NoError(t, err)

		count, err := lr.DailyCount(ctx, c.ID, since)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func TestLikeRepository_ConcurrentQuota(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	pr := repo.NewProfileRepository(conn)
	lr := repo.NewLikeRepository(conn)
	since := model.StartOfDayUTC(time.Now())
	const limit = 5

	source := createProfile(t, pr, "Source", model.GenderMale)
	for i := 0; i < limit-1; i++ {
		target := createProfile(t, pr, "Warmup", model.GenderFemale)
		_, err := lr.Record(ctx, model.Like{SourceID: source.ID, TargetID: target.ID}, limit, since)
		require.NoError(t, err)
	}

	targets := make([]model.Profile, 5)
	for i := range targets {
		targets[i] = createProfile(t, pr, "Target", model.GenderFemale)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for _, target := range targets {
		wg.Add(1)
		go func(target model.Profile) {
			defer wg.Done()
			_, err := lr.Record(ctx, model.Like{SourceID: source.ID, TargetID: target.ID}, limit, since)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, model.ErrQuotaExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(target)
	}
	wg.Wait()

	require.Equal(t, 1, accepted)
	require.Equal(t, 4, rejected)

	count, err := lr.DailyCount(ctx, source.ID, since)
	require.NoError(t, err)
	require.Equal(t, limit, count)
}

func TestLikeRepository_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	pr := repo.NewProfileRepository(conn)
	lr := repo.NewLikeRepository(conn)
	since := model.StartOfDayUTC(time.Now())

	a := createProfile(t, pr, "Dup", model.GenderMale)
	b := createProfile(t, pr, "Dup", model.GenderFemale)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := lr.Record(ctx, model.Like{SourceID: a.ID, TargetID: b.ID}, 5, since)
			errs <- err
		}()
	}

	var conflicts, successes int
	for i := 0; i < 2; i++ {
		err := <-errs
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, model.ErrConflict)
		conflicts++
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, conflicts)
}

func TestRefreshTokenRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	pr := repo.NewProfileRepository(conn)
	tr := repo.NewRefreshTokenRepository(conn)

	p := createProfile(t, pr, "Token", model.GenderMale)
	rt := model.RefreshToken{
		JTI:       uuid.NewString(),
		ProfileID: p.ID,
		TokenHash: []byte("hash"),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tr.Create(ctx, rt))

	got, err := tr.GetByJTI(ctx, rt.JTI)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ProfileID)
	require.Nil(t, got.RevokedAt)

	require.NoError(t, tr.RevokeAllByProfile(ctx, p.ID))
	got, err = tr.GetByJTI(ctx, rt.JTI)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)

	_, err = tr.GetByJTI(ctx, "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}
