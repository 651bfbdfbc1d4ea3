// Package cache keeps the last successful aggregation pass so repeat reads
// within the TTL skip the network entirely and a failed refresh can fall
// back to stale data instead of an empty page.
package cache

import (
	"sync"
	"time"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
)

// Snapshot is one cached aggregation result. The JSON shape is also the
// persisted payload for the sqlite and redis stores; unknown or missing
// fields in an old payload are ignored, never fatal.
type Snapshot struct {
	Articles    []news.Article `json:"articles"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// Store holds at most one snapshot. Implementations must treat a missing or
// unreadable snapshot as absent rather than erroring the read path.
type Store interface {
	Get() (Snapshot, bool)
	Set(snap Snapshot) error
	Clear() error
}

// MemoryStore is the in-process store used by a single-instance deployment.
type MemoryStore struct {
	mu   sync.RWMutex
	snap Snapshot
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.set
}

func (s *MemoryStore) Set(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.set = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{}
	s.set = false
	return nil
}
