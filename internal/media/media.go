// Package media validates and persists uploaded product images, either
// to a content directory on the local filesystem or to an S3 bucket.
package media

import (
	"context"
	"mime/multipart"
)

// Upload limits enforced on every batch.
const (
	MaxFiles    = 5
	MaxFileSize = 5242880 // 5 MiB
)

// allowedTypes is the content-type allowlist for uploaded images.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
}

// UploadError is a type or size rule violation. The whole batch fails
// on the first violation; nothing is persisted.
type UploadError struct {
	Detail string
}

func (e *UploadError) Error() string {
	return e.Detail
}

// Common upload errors
var (
	ErrTooManyFiles         = &UploadError{Detail: "too many files"}
	ErrUnsupportedMediaType = &UploadError{Detail: "unsupported media type"}
	ErrFileTooLarge         = &UploadError{Detail: "file too large"}
)

// Store persists validated uploads and returns the paths under which
// they are retrievable.
type Store interface {
	// Save validates and persists a batch of uploaded files. Every
	// file is written before Save returns; a validation failure
	// anywhere in the batch persists nothing.
	Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error)

	// Remove deletes previously stored files, best effort. Used to
	// roll back uploads when the product insert fails afterwards.
	Remove(ctx context.Context, paths []string) error
}

// ValidateFiles checks the batch against the upload limits before
// anything touches storage.
func ValidateFiles(files []*multipart.FileHeader) error {
	if len(files) > MaxFiles {
		return ErrTooManyFiles
	}

	for _, fh := range files {
		if !allowedTypes[fh.Header.Get("Content-Type")] {
			return ErrUnsupportedMediaType
		}
		if fh.Size > MaxFileSize {
			return ErrFileTooLarge
		}
	}

	return nil
}
