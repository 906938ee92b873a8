package matchapi

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AuthServiceName        = "sympathy.v1.Auth"
	MatchmakingServiceName = "sympathy.v1.Matchmaking"

	Auth_Register_FullMethodName     = "/" + AuthServiceName + "/Register"
	Auth_Login_FullMethodName        = "/" + AuthServiceName + "/Login"
	Auth_RefreshToken_FullMethodName = "/" + AuthServiceName + "/RefreshToken"
	Auth_RevokeToken_FullMethodName  = "/" + AuthServiceName + "/RevokeToken"

	Matchmaking_ListCandidates_FullMethodName = "/" + MatchmakingServiceName + "/ListCandidates"
	Matchmaking_GetMe_FullMethodName          = "/" + MatchmakingServiceName + "/GetMe"
	Matchmaking_Like_FullMethodName           = "/" + MatchmakingServiceName + "/Like"
	Matchmaking_ListMatches_FullMethodName    = "/" + MatchmakingServiceName + "/ListMatches"
)

// AuthServer serves registration and session endpoints.
type AuthServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	RevokeToken(context.Context, *RevokeTokenRequest) (*Empty, error)
}

// MatchmakingServer serves candidate browsing and likes.
type MatchmakingServer interface {
	ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error)
	GetMe(context.Context, *Empty) (*GetMeResponse, error)
	Like(context.Context, *LikeRequest) (*LikeResponse, error)
	ListMatches(context.Context, *Empty) (*ListMatchesResponse, error)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(Auth_Register_FullMethodName, AuthServer.Register)},
		{MethodName: "Login", Handler: unary(Auth_Login_FullMethodName, AuthServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(Auth_RefreshToken_FullMethodName, AuthServer.RefreshToken)},
		{MethodName: "RevokeToken", Handler: unary(Auth_RevokeToken_FullMethodName, AuthServer.RevokeToken)},
	},
	Metadata: "sympathy/v1/auth",
}

var MatchmakingServiceDesc = grpc.ServiceDesc{
	ServiceName: MatchmakingServiceName,
	HandlerType: (*MatchmakingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCandidates", Handler: unary(Matchmaking_ListCandidates_FullMethodName, MatchmakingServer.ListCandidates)},
		{MethodName: "GetMe", Handler: unary(Matchmaking_GetMe_FullMethodName, MatchmakingServer.GetMe)},
		{MethodName: "Like", Handler: unary(Matchmaking_Like_FullMethodName, MatchmakingServer.Like)},
		{MethodName: "ListMatches", Handler: unary(Matchmaking_ListMatches_FullMethodName, MatchmakingServer.ListMatches)},
	},
	Metadata: "sympathy/v1/matchmaking",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterMatchmakingServer(s grpc.ServiceRegistrar, srv MatchmakingServer) {
	s.RegisterService(&MatchmakingServiceDesc, srv)
}
