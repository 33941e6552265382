package store

import (
	"context"
	"sync"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	token   string
	profile []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (ports.PersistedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.PersistedSession{Token: s.token, Profile: append([]byte(nil), s.profile...)}, nil
}

func (s *MemoryStore) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SaveProfile(_ context.Context, raw []byte) error {
	s.mu.Lock()
	s.profile = append([]byte(nil), raw...)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) RemoveProfile(_ context.Context) error {
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token, s.profile = "", nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
