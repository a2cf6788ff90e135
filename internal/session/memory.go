package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// sweepInterval bounds how often Save scans for abandoned sessions.
const sweepInterval = time.Minute

type memoryStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemory returns a process-local store. Tokens do not survive a restart of the portal.
func NewMemory() Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) Save(_ context.Context, sid, token string, ttl time.Duration) error {
	entry := memoryEntry{token: token}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = entry
	s.sweepLocked()
	return nil
}

// sweepLocked drops expired entries at most once per sweepInterval. Callers hold the write lock.
func (s *memoryStore) sweepLocked() {
	now := s.now()
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for sid, entry := range s.entries {
		if entry.expired(now) {
			delete(s.entries, sid)
		}
	}
}

func (s *memoryStore) Load(_ context.Context, sid string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok {
		return "", ErrNoToken
	}
	if entry.expired(s.now()) {
		s.mu.Lock()
		// a Save may have replaced the entry since the read lock was released
		if current, ok := s.entries[sid]; ok && current.expired(s.now()) {
			delete(s.entries, sid)
		}
		s.mu.Unlock()
		return "", ErrNoToken
	}
	return entry.token, nil
}

func (s *memoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}

func (s *memoryStore) Ping(context.Context) error {
	return nil
}
