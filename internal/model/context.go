package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated profile id on a request context.
type ContextManager interface {
	SetProfileIDToContext(ctx context.Context, profileID uuid.UUID) context.Context
	GetProfileIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
