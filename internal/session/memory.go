package session

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// MemoryStore keeps sessions in process memory. Sessions do not survive restarts.
type MemoryStore struct {
	clock

	mu       sync.Mutex
	sessions map[string]model.Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{clock: newClock(ttl), sessions: make(map[string]model.Session)}
}

func (s *MemoryStore) Create(_ context.Context, userID string, role model.Role) (*model.Session, error) {
	sess := s.build(userID, role)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess

	return sess, nil
}

func (s *MemoryStore) Lookup(_ context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DestroyByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Purge drops expired sessions and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
