package storage

import (
	"context"
	"fmt"
	"time"

	"placementhub/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const (
	uploadTimeout = 30 * time.Second
	maxRetries    = 3
)

// CloudinaryStorage stores resumes in Cloudinary as raw assets and
// returns the secure delivery URL.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinaryStorage creates a storage backend from configuration.
func NewCloudinaryStorage(cfg config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryStorage, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("storage: cloudinary credentials are missing")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryStorage{
		client: client,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

// UploadResume uploads the document with retries and returns its URL.
// The public ID is keyed by owner so a re-upload replaces the previous
// resume.
func (s *CloudinaryStorage) UploadResume(ctx context.Context, input UploadInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     fmt.Sprintf("resume_%d", input.OwnerID),
		ResourceType: "raw",
		Overwrite:    ptrBool(true),
	}

	var result *uploader.UploadResult
	operation := func() error {
		// A retried attempt must see the file from the start, not
		// wherever the previous attempt left the reader.
		if err := rewind(input.Reader); err != nil {
			return backoff.Permanent(fmt.Errorf("storage: failed to reset file position: %w", err))
		}
		var opErr error
		result, opErr = s.client.Upload.Upload(ctx, input.Reader, params)
		if opErr == nil && result != nil && result.Error.Message != "" {
			opErr = fmt.Errorf("storage: cloudinary: %s", result.Error.Message)
		}
		return opErr
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = uploadTimeout / 2
	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx),
		func(err error, d time.Duration) {
			s.logger.Warn("Resume upload attempt failed",
				zap.Int64("owner_id", input.OwnerID),
				zap.Error(err),
				zap.Duration("backoff", d),
			)
		},
	)
	if err != nil {
		return "", fmt.Errorf("storage: resume upload failed: %w", err)
	}

	s.logger.Info("Resume uploaded",
		zap.Int64("owner_id", input.OwnerID),
		zap.String("public_id", result.PublicID),
		zap.Int("bytes", result.Bytes),
	)
	return result.SecureURL, nil
}

func ptrBool(b bool) *bool { return &b }
