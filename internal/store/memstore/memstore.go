// Package memstore is an in-process KV. Nothing survives a restart.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/Makepad-fr/tada/internal/store"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ store.KV = (*Store)(nil)

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (m *Store) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Store) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *Store) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
