package ports

import (
	"context"
	"io"
)

// FileUpload is an incoming file as handed over by the transport layer.
type FileUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// FileStore persists uploaded files. Save writes the content under
// dir/name and returns the relative path to record in the database;
// Delete is a no-op for paths that no longer exist.
type FileStore interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}
