// Package testutil provides shared test utilities, mocks, and fixtures for
// testing the unitip client.
package testutil

import (
	"sync"

	"unitip-client/internal/domain"
)

// MemorySessionStore implements domain.SessionStore entirely in memory. The
// zero value is an empty store.
type MemorySessionStore struct {
	mu      sync.RWMutex
	current *domain.Session

	// Function overrides - set these to customize behavior
	SaveFunc  func(sess domain.Session) error
	ClearFunc func() error
}

// NewMemorySessionStore creates a store preloaded with the given session.
func NewMemorySessionStore(sess domain.Session) *MemorySessionStore {
	return &MemorySessionStore{current: &sess}
}

func (s *MemorySessionStore) Read() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *MemorySessionStore) Save(sess domain.Session) error {
	if s.SaveFunc != nil {
		return s.SaveFunc(sess)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &sess
	return nil
}

func (s *MemorySessionStore) Clear() error {
	if s.ClearFunc != nil {
		return s.ClearFunc()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return nil
}
