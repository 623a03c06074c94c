// Package persist defines the narrow key/value contract used by persistent
// signals and the store persister, plus a couple of adapters.
package persist

import "sync"

// Adapter loads and saves serialized values by key. A missing key is not an
// error; Load reports it with ok == false. Corrupt payloads are the
// caller's problem to detect (they own the serialization format) and must
// be treated as absence.
type Adapter interface {
	Load(key string) (data string, ok bool, err error)
	Save(key, data string) error
}

// MemoryAdapter keeps everything in a map. Useful for tests and for hosts
// that only want session-lifetime persistence.
type MemoryAdapter struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{values: map[string]string{}}
}

func (m *MemoryAdapter) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.values[key]
	return data, ok, nil
}

func (m *MemoryAdapter) Save(key, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	return nil
}
