package memory

import (
	"context"
	"sync"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

// SessionStore keeps admin sessions in process memory.
// Sessions do not survive a restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session
	s.sweepLocked()
	return nil
}

// Get removes the session when it has expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	if session.Expired(s.now()) {
		s.mu.Lock()
		if current, ok := s.sessions[id]; ok && current.Expired(s.now()) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// sweepLocked drops expired sessions. Caller holds mu.
func (s *SessionStore) sweepLocked() {
	now := s.now()
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
		}
	}
}
