package kvmock

import (
	"context"
	"sync"

	"loan-application-backend/internal/domain/kv"
)

var _ kv.Store = (*Store)(nil)

// Store is a map-backed kv.Store. Set any Fn field to inject behaviour;
// unset ones fall through to the map.
type Store struct {
	GetFn    func(ctx context.Context, key string) ([]byte, error)
	SetFn    func(ctx context.Context, key string, value []byte) error
	RemoveFn func(ctx context.Context, key string) error

	mu   sync.Mutex
	data map[string][]byte
}

func New() *Store { return &Store{data: map[string][]byte{}} }

func (m *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Store) Set(ctx context.Context, key string, value []byte) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Store) Remove(ctx context.Context, key string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns how many keys are stored.
func (m *Store) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
