package session

import (
	"context"
	"sync"
	"time"

	"adra/pkg/types"
)

// MemoryStore keeps sessions in a mutex-guarded map. Expired entries are
// dropped lazily on lookup.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]types.AdminSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]types.AdminSession)}
}

func (s *MemoryStore) Save(_ context.Context, session types.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *MemoryStore) Find(_ context.Context, token string) (types.AdminSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return types.AdminSession{}, types.ErrSessionNotFound
	}

	if session.Expired(time.Now()) {
		delete(s.sessions, token)
		return types.AdminSession{}, types.ErrSessionNotFound
	}

	return session, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
