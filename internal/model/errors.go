package model

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrQuotaExceeded      = errors.New("daily like quota exceeded")
	ErrDependencyFailure  = errors.New("dependency failure")
)
