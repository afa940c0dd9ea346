package openlibrary

import "sync"

// memo is a get-or-fetch cache that lives for the length of the process.
// A value is stored only after a successful fetch, so failures are retried
// on the next call for the same key. Entries are never evicted; max caps
// growth by refusing to admit new keys once the map is full.
type memo[V any] struct {
	mu      sync.Mutex
	max     int
	entries map[string]V
}

func newMemo[V any](max int) *memo[V] {
	return &memo[V]{max: max, entries: make(map[string]V)}
}

// GetOrFetch returns the value cached under key, or calls fetch and caches
// its result. After one success for a key, fetch is never called for that
// key again. The lock is not held across fetch, so concurrent misses on the
// same key may both hit the network; last writer wins, which is harmless
// for identical responses.
func (m *memo[V]) GetOrFetch(key string, fetch func() (V, error)) (V, error) {
	m.mu.Lock()
	if v, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err := fetch()
	if err != nil {
		var zero V
		return zero, err
	}

	m.mu.Lock()
	if _, ok := m.entries[key]; !ok && len(m.entries) < m.max {
		m.entries[key] = v
	}
	m.mu.Unlock()
	return v, nil
}

// Len reports the number of cached entries.
func (m *memo[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
