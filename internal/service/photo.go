package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
	"github.com/dtroode/sympathy-server/internal/photo"
)

const DefaultPhotoMaxBytes = 5 << 20

var _ model.PhotoStore = (*Photos)(nil)

// Photos watermarks profile photos and uploads them to object storage.
type Photos struct {
	storage     model.Storage
	watermarker *photo.Watermarker
	maxBytes    int
	logger      *logger.Logger
}

func NewPhotos(storage model.Storage, watermarkText string, maxBytes int, logger *logger.Logger) *Photos {
	if maxBytes <= 0 {
		maxBytes = DefaultPhotoMaxBytes
	}
	return &Photos{
		storage:     storage,
		watermarker: photo.NewWatermarker(watermarkText),
		maxBytes:    maxBytes,
		logger:      logger,
	}
}

// Store returns the object key the photo was uploaded under.
func (s *Photos) Store(ctx context.Context, profileID uuid.UUID, raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: photo is empty", model.ErrInvalidArgument)
	}
	if len(raw) > s.maxBytes {
		return "", fmt.Errorf("%w: photo exceeds %d bytes", model.ErrInvalidArgument, s.maxBytes)
	}

	processed, err := s.watermarker.Process(raw)
	if errors.Is(err, photo.ErrUnsupportedImage) {
		return "", fmt.Errorf("%w: %w", model.ErrInvalidArgument, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to process photo: %w", err)
	}

	key := PhotoKey(profileID)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(processed)); err != nil {
		s.logger.Error("Photos service: failed to upload photo",
			"profile_id", profileID.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to upload photo: %w: %w", model.ErrDependencyFailure, err)
	}

	s.logger.Debug("Photos service: photo stored",
		"profile_id", profileID.String(),
		"key", key,
		"size", len(processed))

	return key, nil
}

// Remove deletes a previously stored photo.
func (s *Photos) Remove(ctx context.Context, ref string) error {
	if err := s.storage.Delete(ctx, ref); err != nil {
		return fmt.Errorf("failed to delete photo: %w: %w", model.ErrDependencyFailure, err)
	}
	return nil
}

// PhotoKey is the object key of a profile photo.
func PhotoKey(profileID uuid.UUID) string {
	return "photos/" + profileID.String() + ".jpeg"
}
