package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Validation errors surfaced to the upload handler.
var (
	ErrFileTooLarge    = errors.New("storage: file exceeds maximum size")
	ErrInvalidFileType = errors.New("storage: only PDF files are accepted")
)

// UploadInput describes one incoming resume file.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64

	// OwnerID scopes the stored object to the uploading user.
	OwnerID int64
}

// FileStorage stores resume documents and returns a stable reference URL.
type FileStorage interface {
	UploadResume(ctx context.Context, input UploadInput) (string, error)
}

// DisabledStorage rejects uploads. Used when no backend credentials are
// configured so the rest of the API still works.
type DisabledStorage struct{}

func (DisabledStorage) UploadResume(context.Context, UploadInput) (string, error) {
	return "", errors.New("storage: no file storage configured")
}

// ValidateResume enforces the resume upload constraints: a positive
// size within maxSize bytes, and content that sniffs as a PDF. The
// client-supplied Content-Type header is not trusted. The reader is
// rewound after sniffing.
func ValidateResume(input UploadInput, maxSize int64) error {
	if input.Size <= 0 || input.Size > maxSize {
		return ErrFileTooLarge
	}

	buf := make([]byte, 512)
	n, err := input.Reader.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("storage: failed to read file: %w", err)
	}
	if err := rewind(input.Reader); err != nil {
		return fmt.Errorf("storage: failed to reset file position: %w", err)
	}

	if http.DetectContentType(buf[:n]) != "application/pdf" {
		return ErrInvalidFileType
	}
	return nil
}

// rewind resets a seekable reader to its start. Non-seekable readers
// are left as is.
func rewind(r io.Reader) error {
	if seeker, ok := r.(io.Seeker); ok {
		_, err := seeker.Seek(0, io.SeekStart)
		return err
	}
	return nil
}
