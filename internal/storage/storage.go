package storage

import (
	"sync"
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/models"
)

type SessionStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
	now      func() time.Time
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
		now:      time.Now,
	}
}

// Get returns a copy of the session
func (s *SessionStore) Get(sessionID string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return models.Session{}, false
	}
	return *session, true
}

// GetOrCreate returns the session, creating an empty one if needed
func (s *SessionStore) GetOrCreate(sessionID string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreateLocked(sessionID)
}

func (s *SessionStore) getOrCreateLocked(sessionID string) *models.Session {
	session, exists := s.sessions[sessionID]
	if !exists {
		now := s.now()
		session = &models.Session{ID: sessionID, CreatedAt: now, UpdatedAt: now}
		s.sessions[sessionID] = session
	}
	return session
}

// Update applies fn to the session's state while holding the store lock, so
// updates of one session never interleave. The session is created if missing.
func (s *SessionStore) Update(sessionID string, fn func(models.Session) models.Session) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.getOrCreateLocked(sessionID)
	next := fn(*current)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	*current = next
	return next
}

func (s *SessionStore) GetAll() map[string]models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]models.Session, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = *v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Expire removes sessions that have not been updated within ttl and returns
// how many were dropped
func (s *SessionStore) Expire(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
