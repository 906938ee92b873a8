package handler

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sympathy-server/internal/api/grpc/matchapi"
	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

// AuthService defines profile registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params model.Registration) (model.Profile, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
	RevokeByToken(ctx context.Context, refreshToken string) error
}

// Auth handles gRPC endpoints for registration and sessions.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a profile.
func (h *Auth) Register(ctx context.Context, req *matchapi.RegisterRequest) (*matchapi.RegisterResponse, error) {
	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	position, err := positionFrom(req.Latitude, req.Longitude)
	if err != nil {
		return nil, handleError(err)
	}

	profile, err := h.authService.Register(ctx, model.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    model.Gender(req.Gender),
		Position:  position,
		Photo:     req.Photo,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: registration completed",
		"profile_id", profile.ID.String())

	return &matchapi.RegisterResponse{Profile: toProfile(profile)}, nil
}

// Login verifies credentials and returns session tokens.
func (h *Auth) Login(ctx context.Context, req *matchapi.LoginRequest) (*matchapi.LoginResponse, error) {
	h.logger.Debug("Auth handler: processing login request",
		"email", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	session, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"profile_id", session.Profile.ID.String())

	return &matchapi.LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Profile:      toProfile(session.Profile),
	}, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *Auth) RefreshToken(ctx context.Context, req *matchapi.RefreshTokenRequest) (*matchapi.RefreshTokenResponse, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	accessToken, refreshToken, err := h.tokenService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful")

	return &matchapi.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RevokeToken revokes a refresh token.
func (h *Auth) RevokeToken(ctx context.Context, req *matchapi.RevokeTokenRequest) (*matchapi.Empty, error) {
	h.logger.Debug("Auth handler: processing token revoke request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	if err := h.tokenService.RevokeByToken(ctx, req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: token revoke failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token revoke successful")

	return &matchapi.Empty{}, nil
}

func positionFrom(lat, lon *float64) (*model.Position, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", model.ErrInvalidArgument)
	}
	return &model.Position{Latitude: *lat, Longitude: *lon}, nil
}
