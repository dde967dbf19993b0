package ratelimit

import (
	"sync"
	"time"
)

// MemoryStore is an in-process rolling-window limiter. It remembers the
// timestamps of accepted requests per identifier, so memory per identifier
// is bounded by Config.Requests.
type MemoryStore struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewMemoryStore creates a limiter allowing cfg.Requests per cfg.Window.
func NewMemoryStore(cfg Config) *MemoryStore {
	return newMemoryStore(cfg, time.Now)
}

func newMemoryStore(cfg Config, now func() time.Time) *MemoryStore {
	return &MemoryStore{
		cfg:       cfg,
		now:       now,
		hits:      make(map[string][]time.Time),
		lastSweep: now(),
	}
}

// Allow records a request for identifier if it is under the limit.
// Rejected requests are not recorded.
func (s *MemoryStore) Allow(identifier string) (bool, error) {
	if s.cfg.Requests <= 0 {
		return true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.cfg.Window)

	hits := dropBefore(s.hits[identifier], cutoff)
	if len(hits) >= s.cfg.Requests {
		s.hits[identifier] = hits
		return false, nil
	}
	s.hits[identifier] = append(hits, now)

	if now.Sub(s.lastSweep) >= s.cfg.Window {
		s.sweep(cutoff)
		s.lastSweep = now
	}

	return true, nil
}

// sweep forgets identifiers with no requests inside the window.
func (s *MemoryStore) sweep(cutoff time.Time) {
	for id, hits := range s.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(s.hits, id)
		}
	}
}

// Len returns the number of identifiers currently tracked.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}

// dropBefore removes timestamps at or before cutoff. hits is sorted.
func dropBefore(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}
