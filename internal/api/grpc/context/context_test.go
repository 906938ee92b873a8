package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetProfileID(t *testing.T) {
	m := NewManager()
	id := uuid.New()
	ctx := m.SetProfileIDToContext(stdctx.Background(), id)

	got, ok := m.GetProfileIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestManager_GetProfileID_NotFound(t *testing.T) {
	_, ok := NewManager().GetProfileIDFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetProfileID_NilID(t *testing.T) {
	m := NewManager()
	_, ok := m.GetProfileIDFromContext(m.SetProfileIDToContext(stdctx.Background(), uuid.Nil))
	assert.False(t, ok)
}

func TestManager_IgnoresMetadata(t *testing.T) {
	md := metadata.Pairs("profile_id", uuid.NewString(), "user_id", uuid.NewString())
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)

	_, ok := NewManager().GetProfileIDFromContext(ctx)
	assert.False(t, ok)
}
