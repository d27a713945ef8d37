package address

import (
	"context"
	"slices"
	"sync"

	"storefront/internal/domain"
)

// Memory keeps address books in process. Used when no database is configured.
type Memory struct {
	mu     sync.Mutex
	byUser map[string][]domain.Address
}

func NewMemory() *Memory {
	return &Memory{byUser: make(map[string][]domain.Address)}
}

func (m *Memory) List(_ context.Context, userID string) ([]domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.byUser[userID]), nil
}

func (m *Memory) Get(_ context.Context, userID, id string) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(userID, id); i >= 0 {
		return m.byUser[userID][i], nil
	}
	return domain.Address{}, domain.ErrNotFound
}

func (m *Memory) Insert(_ context.Context, userID string, a domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[userID] = append(m.byUser[userID], a)
	return nil
}

func (m *Memory) Update(_ context.Context, userID string, a domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(userID, a.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	m.byUser[userID][i] = a
	return nil
}

func (m *Memory) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(userID, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	m.byUser[userID] = slices.Delete(m.byUser[userID], i, i+1)
	return nil
}

func (m *Memory) index(userID, id string) int {
	return slices.IndexFunc(m.byUser[userID], func(a domain.Address) bool { return a.ID == id })
}
