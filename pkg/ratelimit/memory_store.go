package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store. Safe for concurrent use; state
// is lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Attempt
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory store and starts a janitor that
// drops entries untouched for longer than their window.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]Attempt),
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.cleanup(cleanupInterval)
	}
	return s
}

// Get returns the attempt record for id, or nil when absent.
func (s *MemoryStore) Get(_ context.Context, id string) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// Set stores the attempt record for id. The ttl is handled by the
// janitor rather than per entry.
func (s *MemoryStore) Set(_ context.Context, id string, a Attempt, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = a
	return nil
}

// Delete removes the attempt record for id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Stop stops the janitor goroutine.
func (s *MemoryStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-interval)
			s.mu.Lock()
			for id, a := range s.entries {
				if a.LastAttempt.Before(cutoff) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}
