package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/coachdesk/ascend/internal/domain/pipeline"
	"github.com/coachdesk/ascend/pkg/metrics"
)

// MemStore is the in-memory Store. A single RWMutex over a keyed map is
// plenty at the expected scale (low thousands of records per coach);
// per-coach listing is a filtered scan kept deterministic by sorting on id.
type MemStore struct {
	mu              sync.RWMutex
	records         map[string]pipeline.Record
	byCoach         map[string]map[string]struct{}
	initialCapacity int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		initialCapacity: 256,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.records = make(map[string]pipeline.Record, s.initialCapacity)
	s.byCoach = make(map[string]map[string]struct{})
	return s
}

// Create implements Store.
func (s *MemStore) Create(_ context.Context, rec pipeline.Record) (pipeline.Record, error) {
	if rec.ID == "" {
		return pipeline.Record{}, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return pipeline.Record{}, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
	}

	rec.Version = 1
	s.records[rec.ID] = rec
	if s.byCoach[rec.CoachID] == nil {
		s.byCoach[rec.CoachID] = make(map[string]struct{})
	}
	s.byCoach[rec.CoachID][rec.ID] = struct{}{}

	metrics.UpdateRecordsTracked(len(s.records))
	return rec, nil
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, id string) (pipeline.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return pipeline.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

// ListByCoach implements Store.
func (s *MemStore) ListByCoach(_ context.Context, coachID string, kind pipeline.Kind) ([]pipeline.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCoach[coachID]
	out := make([]pipeline.Record, 0, len(ids))
	for id := range ids {
		rec := s.records[id]
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Save implements Store. The conditional check on Version is the whole
// point: a stale snapshot loses and must be re-fetched.
func (s *MemStore) Save(_ context.Context, rec pipeline.Record) (pipeline.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[rec.ID]
	if !ok {
		return pipeline.Record{}, fmt.Errorf("%w: %s", ErrNotFound, rec.ID)
	}
	if current.Version != rec.Version {
		return pipeline.Record{}, fmt.Errorf("%w: %s has version %d, snapshot has %d",
			ErrVersionConflict, rec.ID, current.Version, rec.Version)
	}

	rec.Version++
	s.records[rec.ID] = rec

	if current.CoachID != rec.CoachID {
		delete(s.byCoach[current.CoachID], rec.ID)
		if s.byCoach[rec.CoachID] == nil {
			s.byCoach[rec.CoachID] = make(map[string]struct{})
		}
		s.byCoach[rec.CoachID][rec.ID] = struct{}{}
	}
	return rec, nil
}

// Count implements Store.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
