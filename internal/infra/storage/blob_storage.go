// Package storage implements media persistence on top of gocloud.dev blob
// buckets, so the bucket backend is swappable through the bucket URL alone.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tapcard/config"
	"tapcard/internal/domain/lifecycle"
	"tapcard/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Registered bucket drivers. Local disk for development, in-memory for tests.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobStorage implements the service.MediaStorage interface.
type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBucket opens the configured blob bucket and ties its lifetime to the
// application lifecycle.
func NewBucket(lc fx.Lifecycle, cfg *config.Config) (*blob.Bucket, error) {
	if cfg.Storage == nil || cfg.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, cfg.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return bucket, nil
}

// NewBlobStorage is the constructor for blobStorage.
func NewBlobStorage(bucket *blob.Bucket, cfg *config.Config) service.MediaStorage {
	baseURL := ""
	if cfg.Storage != nil {
		baseURL = strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/")
	}

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: baseURL,
	}
}

// Store writes the upload under a time-prefixed key inside the logical
// directory and returns its public URL.
func (s *blobStorage) Store(ctx context.Context, upload *service.Upload, dir string) (string, error) {
	key := fmt.Sprintf("%s/%d_%s", strings.Trim(dir, "/"), time.Now().UnixNano(), sanitizeFilename(upload.Filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: upload.ContentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := writer.ReadFrom(upload.Content); err != nil {
		_ = writer.Close()
		return "", errors.Wrap(err, "failed to write media object")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize media object")
	}

	return s.publicBaseURL + "/" + key, nil
}

// sanitizeFilename strips path separators and whitespace so a client-supplied
// name cannot escape its directory or produce unlinkable URLs.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	name = replacer.Replace(name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}

	return name
}
