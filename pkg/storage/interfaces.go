package storage

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded photo files under caller-chosen keys.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
