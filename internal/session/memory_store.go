package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID  int64
	expires time.Time
}

type memoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry

	lastSweep time.Time
}

// NewMemoryStore keeps sessions in process memory. Used when no Redis
// address is configured; sessions do not survive a restart.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) Create(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}
	s.sessions[token] = memoryEntry{userID: userID, expires: now.Add(s.ttl)}
	return nil
}

// sweep drops expired sessions that were never looked up again. Callers hold mu.
func (s *memoryStore) sweep(now time.Time) {
	for token, entry := range s.sessions {
		if !now.Before(entry.expires) {
			delete(s.sessions, token)
		}
	}
	s.lastSweep = now
}

func (s *memoryStore) UserID(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return 0, ErrNotFound
	}
	if !s.now().Before(entry.expires) {
		delete(s.sessions, token)
		return 0, ErrNotFound
	}
	return entry.userID, nil
}

func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
