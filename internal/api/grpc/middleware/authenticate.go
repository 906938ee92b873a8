package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenResolver resolves a profile id from a bearer access token.
type TokenResolver interface {
	GetProfileID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the profile id into the context.
type Authenticate struct {
	tokens         TokenResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokens TokenResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Required rejects calls without a token (Unauthenticated) or with a bad one (PermissionDenied).
func (m *Authenticate) Required(ctx context.Context) (context.Context, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, errMissingToken.Error())
	}
	return m.resolve(ctx, token)
}

// Optional lets calls without a token through as anonymous. A present but bad token
// is still rejected with PermissionDenied.
func (m *Authenticate) Optional(ctx context.Context) (context.Context, error) {
	token := bearerToken(ctx)
	if token == "" {
		return ctx, nil
	}
	return m.resolve(ctx, token)
}

func (m *Authenticate) resolve(ctx context.Context, token string) (context.Context, error) {
	profileID, err := m.tokens.GetProfileID(ctx, token)
	if err != nil || profileID == uuid.Nil {
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected",
				"error", err.Error())
		}
		return nil, status.Error(codes.PermissionDenied, errInvalidToken.Error())
	}
	return m.contextManager.SetProfileIDToContext(ctx, profileID), nil
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}

	value := strings.TrimSpace(values[0])
	if len(value) > len("bearer ") && strings.EqualFold(value[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(value[len("bearer "):])
	}
	return value
}
