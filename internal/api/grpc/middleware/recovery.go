package middleware

import (
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sympathy-server/internal/logger"
)

// RecoveryHandler turns a handler panic into codes.Internal and logs the panic value.
func RecoveryHandler(logger *logger.Logger) recovery.RecoveryHandlerFunc {
	return func(p any) error {
		logger.Error("gRPC handler panicked",
			"panic", fmt.Sprint(p))
		return status.Error(codes.Internal, "internal server error")
	}
}
