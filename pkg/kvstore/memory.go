package kvstore

import (
	"maps"
	"slices"
	"sync"
)

// MemoryStorage implements Storage using an in-memory map
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates a new in-memory storage, optionally pre-populated with seed.
func NewMemoryStorage(seed ...map[string]string) *MemoryStorage {
	m := &MemoryStorage{values: make(map[string]string)}
	for _, s := range seed {
		maps.Copy(m.values, s)
	}
	return m
}

// Get retrieves a value by key
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores a value under key
func (m *MemoryStorage) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove deletes a key
func (m *MemoryStorage) Remove(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Keys returns all keys in lexical order
func (m *MemoryStorage) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.values)), nil
}

// Snapshot returns a copy of the stored values.
func (m *MemoryStorage) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.values)
}

// Len returns the number of stored keys.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
