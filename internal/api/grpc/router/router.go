package router

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/sympathy-server/internal/api/grpc/handler"
	"github.com/dtroode/sympathy-server/internal/api/grpc/matchapi"
	"github.com/dtroode/sympathy-server/internal/api/grpc/middleware"
	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

// TokenService is the token side of the API: authentication of calls and session endpoints.
type TokenService interface {
	handler.TokenService
	middleware.TokenResolver
}

// Services are the application services the router exposes.
type Services struct {
	Auth       handler.AuthService
	Profiles   handler.ProfileService
	Tokens     TokenService
	Candidates model.CandidateFinder
	Matches    handler.MatchService
}

// Router builds the gRPC server of the matchmaking API.
type Router struct {
	services       Services
	contextManager model.ContextManager
	requestTimeout time.Duration
	logger         *logger.Logger
}

// New creates a new Router.
func New(
	services Services,
	contextManager model.ContextManager,
	requestTimeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// requiresAuth matches every matchmaking method except candidate browsing.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return c.Service == matchapi.MatchmakingServiceName && c.FullMethod() != matchapi.Matchmaking_ListCandidates_FullMethodName
}

// optionalAuth matches candidate browsing, which serves anonymous callers.
func optionalAuth(_ context.Context, c interceptors.CallMeta) bool {
	return c.FullMethod() == matchapi.Matchmaking_ListCandidates_FullMethodName
}

// Register builds the gRPC server with interceptors and both services registered.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	timeout := middleware.NewTimeout(r.requestTimeout)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(middleware.RecoveryHandler(r.logger))),
			logging.HandleGRPC,
			timeout.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.Required),
				selector.MatchFunc(requiresAuth),
			),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.Optional),
				selector.MatchFunc(optionalAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerAuthRoutes(s)
	r.registerMatchmakingRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.services.Auth, r.services.Tokens, r.logger)
	matchapi.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerMatchmakingRoutes(server *grpc.Server) {
	matchmakingHandler := handler.NewMatchmaking(
		r.services.Candidates,
		r.services.Profiles,
		r.services.Matches,
		r.contextManager,
		r.logger,
	)
	matchapi.RegisterMatchmakingServer(server, matchmakingHandler)
}
