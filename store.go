// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistent key-value boundary used by the cache manager.
//
// Implementations only need to handle string keys and string values; the
// cache manager serializes model storage to JSON before writing. Stored
// values are JSON-primitive-compatible (string, number, bool, null, array
// of such), which is the on-disk contract other tooling must respect when
// interoperating.
//
// Implementations must be safe for sequential use by the cache manager;
// the manager serializes its own access, so a Store does not need its own
// locking unless it is shared outside the library.
type Store interface {
	// Get returns the value for a key and whether it exists
	Get(key string) (string, bool)

	// Set writes a value for a key, overwriting any previous value
	Set(key, value string) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(key string) error

	// Keys returns all keys currently present in the store
	Keys() []string
}

// MemoryStore is a process-local Store backed by a map.
//
// This is the default store. It carries its own lock so it remains safe
// when shared between a registry and test code.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// Get returns the value for a key and whether it exists
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set writes a value for a key
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Delete removes a key
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Keys returns all keys currently present in the store
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

// FileStore is a Store that persists each entry as a file in a directory.
//
// Keys are escaped so that any cache key maps to a valid file name. The
// directory is created on first write if it does not exist.
//
// Example:
//
//	store := zeromodel.NewFileStore("/var/cache/app")
//	reg := zeromodel.NewRegistry(
//	    zeromodel.CachePolicy(zeromodel.PolicyUntilNextWrite),
//	    zeromodel.WithStore(store))
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// path maps a cache key to a file path inside the store directory
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.QueryEscape(key))
}

// Get returns the value for a key and whether it exists
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes a value for a key, creating the directory if needed
func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0o600)
}

// Delete removes a key
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Keys returns all keys currently present in the store
func (s *FileStore) Keys() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, err := url.QueryUnescape(entry.Name())
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
