package fsxlocal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalFileSystem implements fsx.FileSystem on a local directory. Intended
// for development environments without an S3 bucket.
type LocalFileSystem struct {
	root string
}

func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: root}
}

func (fs *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(fs.root, path))
	if err != nil {
		return nil, fmt.Errorf("read local file %s: %w", path, err)
	}
	return data, nil
}

func (fs *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full := filepath.Join(fs.root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write local file %s: %w", path, err)
	}
	return nil
}
