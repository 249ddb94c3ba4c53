package session

import (
	"context"
	"sync"
	"time"
)

// entry holds one session's identity together with its idle deadline.
type entry struct {
	email     string
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-memory session store with a sliding idle
// timeout. Implements domain.SessionStore. Suitable for a single-instance
// deployment; use RedisStore when sessions must survive restarts.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
}

// NewMemoryStore creates a memory store whose sessions expire after ttl of
// inactivity.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
	go s.cleanupLoop()
	return s
}

// Get returns the email for the session, refreshing its idle deadline.
// An unknown or expired session yields ok=false, not an error.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[sessionID]
	if !found {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, sessionID)
		return "", false, nil
	}
	e.expiresAt = time.Now().Add(s.ttl)
	return e.email, true, nil
}

// Set stores the email for the session, replacing any prior identity.
func (s *MemoryStore) Set(_ context.Context, sessionID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = &entry{
		email:     email,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Clear removes the session. Clearing an absent session is a no-op.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// cleanup removes expired entries.
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}
