// Package persistent defines the read/write contract the SDK uses for data
// that should survive a single session: the stable ID and the last good
// initialize payload. The SDK works without one; a nil Storage simply means a
// fresh stable ID per session and no cache bootstrap.
package persistent

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("persistent storage: key not found")

// Storage is the contract the SDK requires from a persistence layer
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// Memory is an in-process Storage implementation. It persists nothing across
// restarts but honors the full contract; used as a stand-in in tests and in
// embedded setups.
type Memory struct {
	mutex sync.RWMutex
	data  map[string]string
}

// NewMemory instantiates a Memory storage
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get retrieves the value stored under key
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key
func (m *Memory) Set(ctx context.Context, key string, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = value
	return nil
}
