package router

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcctx "github.com/dtroode/sympathy-server/internal/api/grpc/context"
	"github.com/dtroode/sympathy-server/internal/api/grpc/matchapi"
	"github.com/dtroode/sympathy-server/internal/mocks"
	"github.com/dtroode/sympathy-server/internal/model"
	"github.com/dtroode/sympathy-server/internal/repository/memory"
	"github.com/dtroode/sympathy-server/internal/service"
	"github.com/dtroode/sympathy-server/internal/testutil"
	"github.com/dtroode/sympathy-server/internal/token"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	r := New(Services{}, mocks.NewContextManager(t), time.Second, testutil.MakeNoopLogger())
	s := r.Register()
	require.NotNil(t, s)

	info := s.GetServiceInfo()
	assert.Contains(t, info, matchapi.AuthServiceName)
	assert.Contains(t, info, matchapi.MatchmakingServiceName)
}

type recordingNotifier struct {
	mu    sync.Mutex
	pairs [][2]model.Profile
}

func (n *recordingNotifier) NotifyMatch(_ context.Context, a, b model.Profile) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pairs = append(n.pairs, [2]model.Profile{a, b})
	return nil
}

type testClients struct {
	auth        *matchapi.AuthClient
	matchmaking *matchapi.MatchmakingClient
	notifier    *recordingNotifier
}

func startServer(t *testing.T) testClients {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	store := memory.NewStore()
	jwt := token.NewJWT("test-secret", time.Minute, time.Hour)
	tokens := service.NewTokenService(jwt, store.RefreshTokens(), time.Hour, lg)
	candidates := service.NewCachedCandidates(service.NewCandidates(store.Profiles(), lg), 100, time.Minute, lg)
	auth := service.NewAuth(store.Profiles(), candidates, nil, tokens, lg)
	notifier := &recordingNotifier{}
	match := service.NewMatch(store.Profiles(), store.Likes(), notifier, model.DefaultDailyLikeLimit, lg)

	r := New(Services{
		Auth:       auth,
		Profiles:   auth,
		Tokens:     tokens,
		Candidates: candidates,
		Matches:    match,
	}, grpcctx.NewManager(), 5*time.Second, lg)

	lis := bufconn.Listen(1 << 20)
	s := r.Register()
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return testClients{
		auth:        matchapi.NewAuthClient(conn),
		matchmaking: matchapi.NewMatchmakingClient(conn),
		notifier:    notifier,
	}
}

func withToken(ctx context.Context, accessToken string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+accessToken)
}

func register(t *testing.T, c testClients, email, first string, lat, lon float64) string {
	t.Helper()

	_, err := c.auth.Register(context.Background(), &matchapi.RegisterRequest{
		Email:     email,
		Password:  "password1",
		FirstName: first,
		LastName:  "Tester",
		Gender:    "female",
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)

	login, err := c.auth.Login(context.Background(), &matchapi.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestRouter_MutualMatchFlow(t *testing.T) {
	t.Parallel()

	c := startServer(t)
	ctx := context.Background()

	tokenA := register(t, c, "a@example.com", "Alice", 0, 0)
	tokenB := register(t, c, "b@example.com", "Bella", 0, 1)

	meB, err := c.matchmaking.GetMe(withToken(ctx, tokenB))
	require.NoError(t, err)
	meA, err := c.matchmaking.GetMe(withToken(ctx, tokenA))
	require.NoError(t, err)

	first, err := c.matchmaking.Like(withToken(ctx, tokenA), &matchapi.LikeRequest{TargetID: meB.Profile.ID})
	require.NoError(t, err)
	assert.Equal(t, string(model.LikeRecorded), first.Outcome)

	second, err := c.matchmaking.Like(withToken(ctx, tokenB), &matchapi.LikeRequest{TargetID: meA.Profile.ID})
	require.NoError(t, err)
	assert.Equal(t, string(model.MutualMatch), second.Outcome)
	assert.False(t, second.NotificationFailed)

	c.notifier.mu.Lock()
	require.Len(t, c.notifier.pairs, 1)
	c.notifier.mu.Unlock()

	_, err = c.matchmaking.Like(withToken(ctx, tokenA), &matchapi.LikeRequest{TargetID: meB.Profile.ID})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	matches, err := c.matchmaking.ListMatches(withToken(ctx, tokenA))
	require.NoError(t, err)
	require.Len(t, matches.Matches, 1)
	assert.Equal(t, meB.Profile.ID, matches.Matches[0].Profile.ID)
}

func TestRouter_CandidateBrowsing(t *testing.T) {
	t.Parallel()

	c := startServer(t)
	ctx := context.Background()

	tokenA := register(t, c, "a@example.com", "Alice", 0, 0)
	register(t, c, "b@example.com", "Bella", 0, 1)
	register(t, c, "c@example.com", "Carla", 10, 10)

	anon, err := c.matchmaking.ListCandidates(ctx, &matchapi.ListCandidatesRequest{FirstName: "ELL"})
	require.NoError(t, err)
	require.Len(t, anon.Profiles, 1)
	assert.Equal(t, "b@example.com", anon.Profiles[0].Email)

	_, err = c.matchmaking.ListCandidates(ctx, &matchapi.ListCandidatesRequest{MaxDistanceKm: ptr(200.0)})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	near, err := c.matchmaking.ListCandidates(withToken(ctx, tokenA), &matchapi.ListCandidatesRequest{MaxDistanceKm: ptr(200.0)})
	require.NoError(t, err)
	emails := make([]string, 0, len(near.Profiles))
	for _, p := range near.Profiles {
		emails = append(emails, p.Email)
	}
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, emails)

	byEmail, err := c.matchmaking.ListCandidates(ctx, &matchapi.ListCandidatesRequest{Email: "c@example.com"})
	require.NoError(t, err)
	require.Len(t, byEmail.Profiles, 1)

	_, err = c.matchmaking.ListCandidates(withToken(ctx, "garbage"), &matchapi.ListCandidatesRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRouter_AuthRequired(t *testing.T) {
	t.Parallel()

	c := startServer(t)
	ctx := context.Background()

	_, err := c.matchmaking.GetMe(ctx)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.matchmaking.Like(withToken(ctx, "garbage"), &matchapi.LikeRequest{TargetID: "x"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = c.auth.Login(ctx, &matchapi.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func ptr[T any](v T) *T { return &v }
