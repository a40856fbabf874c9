package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	current Session
	present bool
}

// NewMemoryStore crea un Store en memoria (dev y tests).
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.present {
		return Empty(), nil
	}
	return m.current, nil
}

func (m *memoryStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = s
	m.present = true
	return nil
}

func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Session{}
	m.present = false
	return nil
}
