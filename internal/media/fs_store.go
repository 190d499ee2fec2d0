package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// fsStore implements Store on a local content directory.
type fsStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFSStore creates a filesystem-backed media store rooted at dir.
func NewFSStore(dir string, logger zerolog.Logger) Store {
	return &fsStore{
		dir:    dir,
		logger: logger.With().Str("component", "fs-media-store").Logger(),
	}
}

// Save validates the batch and writes each file into the content
// directory under a unique name, returning /uploads/ paths.
func (s *fsStore) Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if err := ValidateFiles(files); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return []string{}, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create content directory")
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		name := uniqueName(fh.Filename)

		if err := s.writeFile(fh, filepath.Join(s.dir, name)); err != nil {
			// Do not leave a partial batch behind.
			if rmErr := s.Remove(ctx, paths); rmErr != nil {
				s.logger.Error().Err(rmErr).Msg("failed to clean up partial upload batch")
			}
			return nil, err
		}

		paths = append(paths, "/uploads/"+name)
	}

	s.logger.Debug().
		Int("count", len(paths)).
		Str("dir", s.dir).
		Msg("uploaded files stored")

	return paths, nil
}

// Remove deletes stored files by their /uploads/ paths.
func (s *fsStore) Remove(ctx context.Context, paths []string) error {
	for _, p := range paths {
		name := filepath.Base(p)
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.logger.Error().Err(err).Str("path", p).Msg("failed to remove stored file")
			return fmt.Errorf("failed to remove stored file %s: %w", p, err)
		}
	}
	return nil
}

func (s *fsStore) writeFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		s.logger.Error().Err(err).Str("file", fh.Filename).Msg("failed to open uploaded file")
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		s.logger.Error().Err(err).Str("dst", dst).Msg("failed to create file")
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		s.logger.Error().Err(err).Str("dst", dst).Msg("failed to write file")
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// uniqueName derives a collision-free filename from the current
// nanosecond clock and the original extension.
func uniqueName(original string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(original))
}
