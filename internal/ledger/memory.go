package ledger

import "sync"

// MemoryStore keeps the last saved snapshot in memory. Useful for tests and
// for running the bot without durability.
type MemoryStore struct {
	mu   sync.Mutex
	snap Snapshot
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return NewSnapshot(), nil
	}
	return m.snap, nil
}

func (m *MemoryStore) Save(snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.set = true
	return nil
}
