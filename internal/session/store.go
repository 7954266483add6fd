package session

import (
	"fmt"
	"sync"
)

// Store is one storage tier for session records. Available reports whether
// the tier can currently serve reads and writes; unavailable tiers are
// skipped rather than treated as errors.
type Store interface {
	Name() string
	Available() bool
	Get(token string) (*Record, error)
	Put(rec *Record) error
	Delete(token string) error
}

// MemoryStore is the primary, process-local tier.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Available() bool { return true }

func (s *MemoryStore) Get(token string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[token]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Put(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Token] = *rec
	return nil
}

func (s *MemoryStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, token)
	return nil
}

// Tiered looks sessions up across prioritized storage tiers: the first
// available tier that holds the token wins, and a hit in a lower tier is
// replicated back into the tiers above it. Writes and deletes go to every
// available tier.
type Tiered struct {
	tiers []Store
}

// NewTiered creates a tiered store. Tier order is priority order.
func NewTiered(tiers ...Store) *Tiered {
	return &Tiered{tiers: tiers}
}

// Lookup finds the record for token, restoring it to higher-priority tiers
// on a lower-tier hit. It returns nil when no tier has the token.
func (t *Tiered) Lookup(token string) (*Record, error) {
	for i, tier := range t.tiers {
		if !tier.Available() {
			continue
		}
		rec, err := tier.Get(token)
		if err != nil {
			return nil, fmt.Errorf("session lookup in %s: %w", tier.Name(), err)
		}
		if rec == nil {
			continue
		}
		// Restore to the tiers ahead of the one that hit.
		for _, higher := range t.tiers[:i] {
			if higher.Available() {
				_ = higher.Put(rec)
			}
		}
		return rec, nil
	}
	return nil, nil
}

// Put writes rec to every available tier.
func (t *Tiered) Put(rec *Record) error {
	var firstErr error
	for _, tier := range t.tiers {
		if !tier.Available() {
			continue
		}
		if err := tier.Put(rec); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("session put in %s: %w", tier.Name(), err)
		}
	}
	return firstErr
}

// Delete removes token from every available tier.
func (t *Tiered) Delete(token string) error {
	var firstErr error
	for _, tier := range t.tiers {
		if !tier.Available() {
			continue
		}
		if err := tier.Delete(token); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("session delete in %s: %w", tier.Name(), err)
		}
	}
	return firstErr
}
