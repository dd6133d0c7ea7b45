package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory. Records are lost when the
// process exits; it backs the REPL and tests.
type MemoryStore struct {
	records []*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Store persists a copy of the record.
func (s *MemoryStore) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	s.records = append(s.records, &recordCopy)
	return nil
}

// Query returns copies of the matching records, newest first.
func (s *MemoryStore) Query(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*Record{}
	// Walk backwards so records with equal timestamps keep newest-first order.
	for i := len(s.records) - 1; i >= 0; i-- {
		if query.matches(s.records[i]) {
			recordCopy := *s.records[i]
			results = append(results, &recordCopy)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RecordedAt.After(results[j].RecordedAt)
	})

	if query != nil && query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

// Count returns the number of matching records.
func (s *MemoryStore) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, r := range s.records {
		if query.matches(r) {
			count++
		}
	}
	return count, nil
}

// Delete removes records recorded before the cutoff.
func (s *MemoryStore) Delete(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, r := range s.records {
		if r.RecordedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
