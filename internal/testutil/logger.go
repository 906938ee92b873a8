package testutil

import (
	"io"

	"github.com/dtroode/sympathy-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithFormat(io.Discard, 0, "text")
}
