package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists records as pretty-printed JSON files in a single
// directory, one file per record name.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first write, not here, so a read-only startup path never touches disk.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, name+".json")
}

// Read implements Store.
func (fs *FileStore) Read(name string, v any) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read record %q: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse record %q: %w", name, err)
	}
	return nil
}

// Write implements Store. The document is written to a temp file in the same
// directory and renamed into place so a crash mid-write cannot corrupt the
// previous snapshot.
func (fs *FileStore) Write(name string, v any) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", name, err)
	}

	tmp, err := os.CreateTemp(fs.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write record %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %q: %w", name, err)
	}
	if err := os.Rename(tmpName, fs.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace record %q: %w", name, err)
	}
	return nil
}

// Delete implements Store.
func (fs *FileStore) Delete(name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record %q: %w", name, err)
	}
	return nil
}
