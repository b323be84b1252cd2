package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage keeps backup snapshots and other exported files.
type FileStorage interface {
	// Save writes the content under path and returns the cleaned path.
	Save(ctx context.Context, path string, content io.Reader) (string, error)

	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// List returns the files under dir, oldest first.
	List(ctx context.Context, dir string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}
