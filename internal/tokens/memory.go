package tokens

import "time"

type memoryEntry struct {
	value     string
	expiry    time.Time
	hasExpiry bool
}

// Memory is an in-memory [Store] for tests and ephemeral runs.
//
// The client is single-threaded per command, so no locking is needed.
type Memory struct {
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	entry, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if entry.hasExpiry && !entry.expiry.After(time.Now()) {
		delete(m.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(key, value string) error {
	m.entries[key] = memoryEntry{value: value}
	return nil
}

func (m *Memory) SetUntil(key, value string, expiry time.Time) error {
	m.entries[key] = memoryEntry{value: value, expiry: expiry, hasExpiry: true}
	return nil
}

func (m *Memory) Expiry(key string) (time.Time, bool, error) {
	entry, ok := m.entries[key]
	if !ok || !entry.hasExpiry {
		return time.Time{}, false, nil
	}
	return entry.expiry, true, nil
}

func (m *Memory) Delete(key string) error {
	delete(m.entries, key)
	return nil
}
