// Package context carries the authenticated profile id through gRPC request contexts.
package context

import (
	"context"

	"github.com/google/uuid"
)

// profileIDKey is unexported so only this package can set the value;
// clients cannot inject an identity through request metadata.
type profileIDKey struct{}

// Manager stores and reads the authenticated profile id.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetProfileIDToContext returns a child context carrying profileID.
func (m *Manager) SetProfileIDToContext(ctx context.Context, profileID uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey{}, profileID)
}

// GetProfileIDFromContext returns the profile id set by the authentication interceptor.
// The boolean is false for anonymous requests.
func (m *Manager) GetProfileIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(profileIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
