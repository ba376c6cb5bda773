package fsx

import "context"

// FileReader reads stored files by path.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileWriter stores files by path.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FileSystem is the storage abstraction used for archiving raw documents.
type FileSystem interface {
	FileReader
	FileWriter
}
