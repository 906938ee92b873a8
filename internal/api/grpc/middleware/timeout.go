package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// Timeout bounds every unary call with a deadline.
type Timeout struct {
	timeout time.Duration
}

func NewTimeout(timeout time.Duration) *Timeout {
	return &Timeout{timeout: timeout}
}

// HandleGRPC runs the handler under a context that expires after the configured timeout.
// A zero timeout disables the interceptor.
func (m *Timeout) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if m.timeout <= 0 {
		return handler(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return handler(ctx, req)
}
