package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage persists the identity record to a single file on disk,
// the closest Go analogue to a browser's local-storage key. Writes go
// through a temp file and rename so a crash never leaves a partial
// record.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage creates a file-backed storage at path. The parent
// directory is created if needed.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{path: path}, nil
}

// Save writes the identity record atomically.
func (f *FileStorage) Save(ctx context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load reads the identity record. A missing file is not an error.
func (f *FileStorage) Load(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the identity record. A missing file is not an error.
func (f *FileStorage) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op for file storage.
func (f *FileStorage) Close() error {
	return nil
}
