package storex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a whole-document JSON store. Every read loads the full document
// and every write overwrites it, pretty-printed UTF-8. An absent file reads
// as an empty document. Writes and read-modify-write sequences are
// serialized by a per-file mutex; there is no cross-process locking.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a store backed by the given path, creating parent
// directories as needed.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory for %s: %w", path, err)
	}
	return &File{path: path}, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Read unmarshals the whole document into out. A missing file leaves out
// untouched, so callers should pass an initialized empty document.
func (f *File) Read(out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(out)
}

// Write overwrites the whole document.
func (f *File) Write(doc any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(doc)
}

// Update runs fn under the store lock, giving it read and write callbacks
// for an atomic read-modify-write against this store.
func (f *File) Update(fn func(read func(any) error, write func(any) error) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.read, f.write)
}

func (f *File) read(out any) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode store %s: %w", f.path, err)
	}
	return nil
}

func (f *File) write(doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", f.path, err)
	}
	return nil
}
