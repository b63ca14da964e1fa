// Package prefstore persists per-grid user preferences, active column
// filters, saved filter sets, and panel field settings.
//
// The in-memory state is authoritative for the session. Every mutation is
// written through to the backend, and backend failures are logged and
// swallowed so a broken store never blocks the UI.
package prefstore

import (
	"context"
	"sync"
)

// Backend is the persistence layer under the stores. Records are JSON
// blobs addressed by a namespaced key such as "grid/trip-plans".
type Backend interface {
	// Load returns the stored blob for key. The second result is false
	// when no record exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save writes the blob for key, replacing any existing record.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the record for key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// MemoryBackend is an in-process Backend used in tests and as the
// fallback when the on-disk store cannot be opened.
type MemoryBackend struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryBackend returns an empty in-process backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.records[key] = stored
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
