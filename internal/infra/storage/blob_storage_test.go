package storage

import (
	"context"
	"strings"
	"testing"

	"tapcard/config"
	"tapcard/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
)

func newMemStorage(t *testing.T) (service.MediaStorage, *blob.Bucket) {
	t.Helper()

	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })

	cfg := &config.Config{}
	cfg.Storage = &config.StorageConfig{
		BucketURL:     "mem://",
		PublicBaseURL: "https://cdn.test/",
	}

	return NewBlobStorage(bucket, cfg), bucket
}

func TestBlobStorage_StoreWritesTimePrefixedKey(t *testing.T) {
	storage, bucket := newMemStorage(t)
	ctx := context.Background()

	url, err := storage.Store(ctx, &service.Upload{
		Filename:    "profile.png",
		ContentType: "image/png",
		Content:     strings.NewReader("image-bytes"),
	}, "cards/abc")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.test/cards/abc/"), url)
	assert.True(t, strings.HasSuffix(url, "_profile.png"), url)

	key := strings.TrimPrefix(url, "https://cdn.test/")
	content, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
}

func TestBlobStorage_RepeatedStoreNeverOverwrites(t *testing.T) {
	storage, _ := newMemStorage(t)
	ctx := context.Background()

	first, err := storage.Store(ctx, &service.Upload{Filename: "a.png", Content: strings.NewReader("one")}, "products")
	require.NoError(t, err)
	second, err := storage.Store(ctx, &service.Upload{Filename: "a.png", Content: strings.NewReader("two")}, "products")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.png", "photo.png"},
		{"path separators replaced", "../../etc/passwd", "..-..-etc-passwd"},
		{"spaces replaced", "my photo.png", "my-photo.png"},
		{"empty falls back", "", "upload"},
		{"dot falls back", ".", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in))
		})
	}
}
