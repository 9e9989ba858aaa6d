package memory

import (
	"context"
	"sync"
	"time"

	"quiz-scoring-engine/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions older than ttl are treated as abandoned; a zero ttl never expires.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return NewSessionStoreWithClock(ttl, time.Now)
}

// NewSessionStoreWithClock allows deterministic expiry in tests.
func NewSessionStoreWithClock(ttl time.Duration, clock func() time.Time) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]domain.Session),
	}
}

func (s *SessionStore) Create(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	s.sessions[session.ID] = session
	return nil
}

// Consume returns the session and removes it; later calls see ErrSessionNotFound.
func (s *SessionStore) Consume(_ context.Context, sessionID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	if s.expired(session) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}

// Len reports the number of stored sessions, including expired ones not yet evicted.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(session domain.Session) bool {
	return s.ttl > 0 && !session.StartedAt.Add(s.ttl).After(s.clock())
}

func (s *SessionStore) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
		}
	}
}
