package model

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Storage is an object store for profile photos.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PhotoStore turns raw uploaded bytes into a stored photo reference.
type PhotoStore interface {
	Store(ctx context.Context, profileID uuid.UUID, raw []byte) (string, error)
	Remove(ctx context.Context, ref string) error
}
