package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a map-backed slot store. It backs the "memory" driver
// (state survives the process only, like a browser with storage disabled)
// and doubles as the test stand-in for the real backends. Reads and writes
// can be made to fail on demand so tests can exercise the fallback paths.
type MemoryStore struct {
	slots      map[string][]byte
	failReads  bool
	failWrites bool
	mu         sync.RWMutex
}

// NewMemoryStore creates an empty in-memory slot store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string][]byte),
	}
}

// Get returns the slot's document, or ErrSlotNotFound
func (m *MemoryStore) Get(_ context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failReads {
		return nil, fmt.Errorf("simulated read failure for slot %s", slot)
	}

	data, ok := m.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put overwrites the slot's document
func (m *MemoryStore) Put(_ context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites {
		return fmt.Errorf("simulated write failure for slot %s", slot)
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.slots[slot] = stored
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (m *MemoryStore) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites {
		return fmt.Errorf("simulated write failure for slot %s", slot)
	}

	delete(m.slots, slot)
	return nil
}

// SetFailReads makes subsequent Gets fail (for testing fallback behavior)
func (m *MemoryStore) SetFailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = fail
}

// SetFailWrites makes subsequent Puts and Deletes fail (for testing)
func (m *MemoryStore) SetFailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// HasSlot reports whether the slot holds a document (for test assertions)
func (m *MemoryStore) HasSlot(slot string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slots[slot]
	return ok
}

// Clear removes all slots
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = make(map[string][]byte)
}
