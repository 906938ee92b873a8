package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/sympathy-server/internal/model"
)

var knownErrors = []error{
	model.ErrNotFound,
	model.ErrConflict,
	model.ErrUnauthenticated,
	model.ErrForbidden,
	model.ErrPreconditionFailed,
	model.ErrInvalidOperation,
	model.ErrInvalidArgument,
	model.ErrQuotaExceeded,
	model.ErrDependencyFailure,
	context.Canceled,
	context.DeadlineExceeded,
}

// dependencyError wraps err with msg. Errors outside the domain taxonomy are
// additionally marked as ErrDependencyFailure so callers can classify them.
func dependencyError(msg string, err error) error {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", msg, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", msg, model.ErrDependencyFailure, err)
}
