package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements Store on an S3 bucket.
type s3Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed media store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-media-store").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 media store initialised")

	return &s3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Save validates the batch and uploads each file to the bucket under a
// unique key, returning /uploads/ paths.
func (s *s3Store) Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if err := ValidateFiles(files); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return []string{}, nil
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		name := uniqueName(fh.Filename)
		key := s.prefix + name

		if err := s.putObject(ctx, fh, key); err != nil {
			if rmErr := s.Remove(ctx, paths); rmErr != nil {
				s.logger.Error().Err(rmErr).Msg("failed to clean up partial upload batch")
			}
			return nil, err
		}

		paths = append(paths, "/uploads/"+name)
	}

	s.logger.Debug().
		Int("count", len(paths)).
		Str("bucket", s.bucket).
		Msg("uploaded files stored")

	return paths, nil
}

// Remove deletes stored objects by their /uploads/ paths.
func (s *s3Store) Remove(ctx context.Context, paths []string) error {
	for _, p := range paths {
		key := s.prefix + strings.TrimPrefix(p, "/uploads/")

		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("bucket", s.bucket).
				Str("key", key).
				Msg("failed to delete object from S3")
			return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
		}
	}
	return nil
}

func (s *s3Store) putObject(ctx context.Context, fh *multipart.FileHeader, key string) error {
	body, err := fh.Open()
	if err != nil {
		s.logger.Error().Err(err).Str("file", fh.Filename).Msg("failed to open uploaded file")
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer body.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(fh.Size),
		ContentType:   aws.String(fh.Header.Get("Content-Type")),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	return nil
}
