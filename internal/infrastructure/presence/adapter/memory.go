package adapter

import (
	"context"
	"sync"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
)

// MemoryRegistry is an in-process port.Registry backed by a plain set.
// It is used in tests and single-node runs where a shared Redis set is not
// required. Safe for concurrent use.
type MemoryRegistry struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{members: make(map[string]struct{})}
}

// Ensure interface compliance at compile time
var _ port.Registry = (*MemoryRegistry)(nil)

func (m *MemoryRegistry) Add(_ context.Context, userID string) error {
	m.mu.Lock()
	m.members[userID] = struct{}{}
	m.mu.Unlock()
	return nil
}

func (m *MemoryRegistry) Remove(_ context.Context, userID string) error {
	m.mu.Lock()
	delete(m.members, userID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRegistry) Contains(_ context.Context, userID string) (bool, error) {
	m.mu.RLock()
	_, ok := m.members[userID]
	m.mu.RUnlock()
	return ok, nil
}

func (m *MemoryRegistry) Members(_ context.Context) ([]string, error) {
	m.mu.RLock()
	out := make([]string, 0, len(m.members))
	for id := range m.members {
		out = append(out, id)
	}
	m.mu.RUnlock()
	return out, nil
}

func (m *MemoryRegistry) Ping(_ context.Context) error { return nil }

func (m *MemoryRegistry) Close() error { return nil }
