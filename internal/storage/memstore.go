package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used in tests and by the --ephemeral flag.
// Values round-trip through JSON so type fidelity matches FileStore.
type MemStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

// Seed stores a raw JSON document under name, bypassing marshalling. Tests
// use it to simulate corrupted or legacy on-disk state.
func (ms *MemStore) Seed(name string, raw []byte) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records[name] = raw
}

// Read implements Store.
func (ms *MemStore) Read(name string, v any) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	data, ok := ms.records[name]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse record %q: %w", name, err)
	}
	return nil
}

// Write implements Store.
func (ms *MemStore) Write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", name, err)
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records[name] = data
	return nil
}

// Delete implements Store.
func (ms *MemStore) Delete(name string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.records, name)
	return nil
}
