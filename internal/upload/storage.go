// Package upload stores user-submitted media files on disk and probes
// audio uploads for metadata.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage manages uploaded file filesystem operations.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a Storage rooted at basePath, creating the
// directory if needed.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Storage{
		basePath: basePath,
	}, nil
}

// Save streams an upload to disk under the given filename.
// Returns the number of bytes written.
func (s *Storage) Save(filename string, r io.Reader) (int64, error) {
	path, err := s.safePath(filename)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	//#nosec G304 -- path is confined to the storage root by safePath
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to close upload file: %w", err)
	}

	return n, nil
}

// Exists checks whether an uploaded file is present.
func (s *Storage) Exists(filename string) bool {
	path, err := s.safePath(filename)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err = os.Stat(path)
	return err == nil
}

// Delete removes an uploaded file. Deleting a missing file is not an error.
func (s *Storage) Delete(filename string) error {
	path, err := s.safePath(filename)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete upload file: %w", err)
	}

	return nil
}

// Path returns the full filesystem path for an uploaded file.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// BasePath returns the storage root, for wiring the static file server.
func (s *Storage) BasePath() string {
	return s.basePath
}

// safePath resolves filename inside the storage root, rejecting
// traversal attempts.
func (s *Storage) safePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return filepath.Join(s.basePath, filename), nil
}
