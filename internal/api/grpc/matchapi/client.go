package matchapi

import (
	"context"

	"google.golang.org/grpc"
)

// AuthClient calls the Auth service with the JSON codec.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, Auth_Register_FullMethodName, in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Auth_Login_FullMethodName, in, opts)
}

func (c *AuthClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, Auth_RefreshToken_FullMethodName, in, opts)
}

func (c *AuthClient) RevokeToken(ctx context.Context, in *RevokeTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_RevokeToken_FullMethodName, in, opts)
}

// MatchmakingClient calls the Matchmaking service with the JSON codec.
type MatchmakingClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchmakingClient(cc grpc.ClientConnInterface) *MatchmakingClient {
	return &MatchmakingClient{cc: cc}
}

func (c *MatchmakingClient) ListCandidates(ctx context.Context, in *ListCandidatesRequest, opts ...grpc.CallOption) (*ListCandidatesResponse, error) {
	return invoke[ListCandidatesResponse](ctx, c.cc, Matchmaking_ListCandidates_FullMethodName, in, opts)
}

func (c *MatchmakingClient) GetMe(ctx context.Context, opts ...grpc.CallOption) (*GetMeResponse, error) {
	return invoke[GetMeResponse](ctx, c.cc, Matchmaking_GetMe_FullMethodName, &Empty{}, opts)
}

func (c *MatchmakingClient) Like(ctx context.Context, in *LikeRequest, opts ...grpc.CallOption) (*LikeResponse, error) {
	return invoke[LikeResponse](ctx, c.cc, Matchmaking_Like_FullMethodName, in, opts)
}

func (c *MatchmakingClient) ListMatches(ctx context.Context, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return invoke[ListMatchesResponse](ctx, c.cc, Matchmaking_ListMatches_FullMethodName, &Empty{}, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}
