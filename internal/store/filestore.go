package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cafe-order/pkg/logger"
)

// FileStore persists each collection as one JSON file under a data
// directory. Writes go through a temp file and rename, so a crash never
// leaves a half-written collection behind.
type FileStore struct {
	dir    string
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}
	return &FileStore{
		dir:    dir,
		logger: log.WithComponent("file_store"),
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads a collection. A collection that was never written returns
// ErrKeyNotFound.
func (s *FileStore) Get(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		s.logger.Error("Failed to read collection", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read collection %s: %v", key, err)
	}
	return data, nil
}

// Put overwrites a collection atomically.
func (s *FileStore) Put(key string, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	target := s.path(key)
	tempFile := target + ".tmp"

	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		s.logger.Error("Failed to write collection", "key", key, "error", err)
		return fmt.Errorf("failed to write collection %s: %v", key, err)
	}

	if err := os.Rename(tempFile, target); err != nil {
		s.logger.Error("Failed to replace collection file", "key", key, "error", err)
		return fmt.Errorf("failed to replace collection %s: %v", key, err)
	}

	s.logger.Debug("Collection written", "key", key, "bytes", len(data))
	return nil
}
