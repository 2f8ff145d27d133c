package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in a process-local map. It is the default
// backend for tests and single-process servers; nothing survives a
// restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get retrieves a session by ID. Expired sessions are removed on read
// and reported as missing.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if sess.IsExpired() {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

// Set stores a session.
func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Cleanup removes all expired sessions.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored sessions, including expired ones
// that have not been cleaned up yet.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
