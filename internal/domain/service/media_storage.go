// Package service defines interfaces for infrastructure services consumed by
// the use case layer.
package service

import (
	"context"
	"io"
)

// Upload is an uploaded binary handed down from the delivery layer.
type Upload struct {
	// Filename is the client-supplied original name, kept as the key suffix.
	Filename string
	// ContentType is the declared MIME type of the upload.
	ContentType string
	// Content streams the file's bytes.
	Content io.Reader
}

// MediaStorage persists uploaded binaries to durable storage and returns a
// publicly resolvable URL. It performs no content validation; image-type
// constraints are the caller's responsibility. Keys carry a time-based prefix
// so an existing object is never overwritten.
type MediaStorage interface {
	// Store writes the upload under the logical directory (e.g. "cards/<id>",
	// "products") and returns its public URL.
	Store(ctx context.Context, upload *Upload, dir string) (string, error)
}
