// Package storage provides the key-value capability the tank persists into.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Get for keys that were never set.
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore is a string-to-string store with no durability guarantee.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// FileStore keeps all keys in a single JSON object on disk.
// Every Set rewrites the file through a temp file and rename.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// OpenFileStore opens the store at path, creating its directory if needed.
// A missing file is an empty store; an unreadable one is logged and treated as empty.
func OpenFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	fs := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fs, nil
	case err != nil:
		slog.Warn("store unreadable, starting empty", "path", path, "error", err)
		return fs, nil
	}
	if len(raw) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		slog.Warn("store corrupt, starting empty", "path", path, "error", err)
		fs.data = make(map[string]string)
	}
	return fs, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key and writes the file.
// On a failed write the in-memory value is kept and the next Set retries the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.writeLocked()
}

func (s *FileStore) writeLocked() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is an in-memory KeyValueStore for tests and headless runs.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes int

	// FailWrites makes Set return an error without storing anything.
	FailWrites bool
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key unless FailWrites is set.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.New("memory store: write refused")
	}
	m.data[key] = value
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
