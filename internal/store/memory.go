package store

import (
	"context"
	"sync"

	"github.com/snipurl/snipurl/internal/shortlink"
)

// MemoryStore is the in-memory implementation of shortlink.Repository and
// the default backend. State lives for the process lifetime only.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*shortlink.Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*shortlink.Entry),
	}
}

func (m *MemoryStore) Create(_ context.Context, entry *shortlink.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[entry.Code]; ok {
		return shortlink.ErrCodeInUse
	}

	m.entries[entry.Code] = snapshot(entry)

	return nil
}

func (m *MemoryStore) Get(_ context.Context, code string) (*shortlink.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[code]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	return snapshot(entry), nil
}

func (m *MemoryStore) List(_ context.Context) ([]*shortlink.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*shortlink.Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, snapshot(entry))
	}

	return entries, nil
}

func (m *MemoryStore) AppendClick(_ context.Context, code string, click shortlink.Click) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[code]
	if !ok {
		return shortlink.ErrNotFound
	}

	entry.Clicks = append(entry.Clicks, click)

	return nil
}

// snapshot copies an entry so callers never share click slices with the
// store's own record.
func snapshot(entry *shortlink.Entry) *shortlink.Entry {
	clicks := make([]shortlink.Click, len(entry.Clicks))
	copy(clicks, entry.Clicks)

	copied := *entry
	copied.Clicks = clicks

	return &copied
}
