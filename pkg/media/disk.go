package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore stores media on the local filesystem. Object ids map to
// file names under the store directory.
type DiskStore struct {
	dir     string
	maxSize int64
}

// NewDiskStore creates a DiskStore rooted at dir. maxSize of 0 means
// no limit.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir, maxSize: maxSize}, nil
}

// Save writes the object under its cleaned name.
func (s *DiskStore) Save(name, contentType string, r io.Reader) (string, error) {
	id := filepath.Base(name)
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1) // +1 to detect overflow
	}

	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return "", ErrTooLarge
	}
	return id, nil
}

// Open returns a reader over the stored object.
func (s *DiskStore) Open(id string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(id)))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// URL returns a file path URL for local rendering.
func (s *DiskStore) URL(id string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(id))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", ErrNotFound
	}
	// Forward slashes regardless of platform.
	return "file://" + strings.ReplaceAll(path, string(os.PathSeparator), "/"), nil
}

// Delete removes the object.
func (s *DiskStore) Delete(id string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(id)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
