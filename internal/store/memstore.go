package store

import (
	"fmt"
	"sync"
	"time"
)

// MemoryStore is a map-backed store for tests and demos. The optional
// latency adds a fixed delay to every read and write to mimic a slow
// backend; it is zero unless configured.
type MemoryStore struct {
	mutex       sync.RWMutex
	collections map[string][]byte
	latency     time.Duration
}

type MemoryOption func(*MemoryStore)

// WithLatency adds a fixed delay to every Get and Put.
func WithLatency(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.latency = d
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		collections: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, ok := s.collections[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	// Copy so callers cannot mutate the stored snapshot.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Put(key string, data []byte) error {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.collections[key] = stored
	return nil
}
