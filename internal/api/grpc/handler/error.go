package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sympathy-server/internal/model"
)

// handleError maps the domain error taxonomy onto gRPC status codes.
// Only invalid-argument errors expose their text; the rest use fixed messages.
func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "authentication required")
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, "access denied")
	case errors.Is(err, model.ErrPreconditionFailed):
		return status.Error(codes.FailedPrecondition, "requester has no position")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "profile not found")
	case errors.Is(err, model.ErrInvalidOperation):
		return status.Error(codes.InvalidArgument, "operation not allowed")
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrQuotaExceeded):
		return status.Error(codes.ResourceExhausted, "daily like quota exceeded")
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, model.ErrDependencyFailure):
		return status.Error(codes.Unavailable, "service temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
