package storage

import (
	"context"
	"io"
)

// Uploader puts a blob on durable storage and returns its content address,
// including the scheme prefix (for example ipfs://<cid>).
type Uploader interface {
	Upload(ctx context.Context, body io.Reader, size int64, name string) (string, error)
}
