package kv

import (
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory Store for tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) List(prefix string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for key, val := range m.data {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{Key: key, Value: append([]byte(nil), val...)})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func (m *Memory) Close() error { return nil }
