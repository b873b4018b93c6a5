package ports

import (
	"context"
	"io"
)

// Location tells the transport how to serve a stored blob: either a local
// Path to stream or a URL to redirect to.
type Location struct {
	Path string
	URL  string
}

type BlobStore interface {
	Put(ctx context.Context, filename string, body io.Reader, size int64, contentType string) error
	Locate(ctx context.Context, filename string) (Location, error)
	Delete(ctx context.Context, filename string) error
}

type PDFValidator interface {
	Validate(r io.ReadSeeker) error
}
