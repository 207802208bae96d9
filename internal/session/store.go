package session

import (
	"sync"
	"time"

	"epilag/domain/core"
	"epilag/internal"
	"epilag/ports"
)

// Store is the in-memory session backend. Entries expire after the
// configured TTL; a janitor goroutine sweeps them out so abandoned analyses
// don't pin fetched series in memory.
type Store struct {
	mu      sync.RWMutex
	entries map[core.SessionID]*entry
	ttl     time.Duration
	logger  *internal.Logger
}

type entry struct {
	session    *ports.AnalysisSession
	lastAccess time.Time
}

// NewStore creates a session store with the given entry lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[core.SessionID]*entry),
		ttl:     ttl,
		logger:  internal.DefaultLogger,
	}
}

// Put stores or replaces a session.
func (s *Store) Put(session *ports.AnalysisSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = &entry{session: session, lastAccess: time.Now()}
}

// Get returns a live session and refreshes its expiry clock.
func (s *Store) Get(id core.SessionID) (*ports.AnalysisSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if time.Since(e.lastAccess) > s.ttl {
		delete(s.entries, id)
		return nil, false
	}
	e.lastAccess = time.Now()
	return e.session, true
}

// Delete removes a session.
func (s *Store) Delete(id core.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartJanitor launches the background expiry sweep. It runs for the life of
// the process.
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			if removed := s.sweep(); removed > 0 {
				s.logger.Debug("session janitor removed %d expired sessions", removed)
			}
		}
	}()
}

func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if time.Since(e.lastAccess) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
