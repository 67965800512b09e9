// Package memory provides in-memory implementations of the storage
// ports. Used by tests and ephemeral sessions; the SQLite adapter is
// the durable variant of the same contracts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
)

// Ensure FactStore implements the interface.
var _ driven.FactStore = (*FactStore)(nil)

// FactStore is an in-memory implementation of driven.FactStore.
// Facts are kept in insertion order, which doubles as the documented
// tie-break for equal ranking scores.
type FactStore struct {
	mu    sync.RWMutex
	facts []domain.Fact
	byID  map[string]int
}

// NewFactStore creates a new in-memory fact store.
func NewFactStore() *FactStore {
	return &FactStore{
		byID: make(map[string]int),
	}
}

// SaveFact stores a new fact built from the draft.
func (s *FactStore) SaveFact(_ context.Context, draft domain.FactDraft) (*domain.Fact, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	importance := draft.Importance
	if importance == 0 {
		importance = domain.DefaultImportance
	}

	fact := domain.Fact{
		ID:         uuid.NewString(),
		Content:    draft.Content,
		Category:   draft.Category,
		Importance: domain.ClampImportance(importance),
		Tags:       append([]string(nil), draft.Tags...),
		CreatedAt:  time.Now().UTC(),
	}
	if draft.Source != nil {
		src := *draft.Source
		fact.Source = &src
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[fact.ID] = len(s.facts)
	s.facts = append(s.facts, fact)

	out := fact
	return &out, nil
}

// GetFact retrieves a fact by ID.
func (s *FactStore) GetFact(_ context.Context, id string) (*domain.Fact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fact := s.facts[idx]
	return &fact, nil
}

// ListFacts returns the corpus in insertion order.
func (s *FactStore) ListFacts(_ context.Context, category string) ([]domain.Fact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Fact, 0, len(s.facts))
	for _, fact := range s.facts {
		if category != "" && !strings.EqualFold(fact.Category, category) {
			continue
		}
		result = append(result, fact)
	}
	return result, nil
}

// FactsByCategory returns facts in a category, importance descending.
// Equal importance keeps insertion order.
func (s *FactStore) FactsByCategory(_ context.Context, category string) ([]domain.Fact, error) {
	s.mu.RLock()
	result := make([]domain.Fact, 0)
	for _, fact := range s.facts {
		if strings.EqualFold(fact.Category, category) {
			result = append(result, fact)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Importance > result[j].Importance
	})
	return result, nil
}

// TouchAccess updates access statistics for the given facts.
// Unknown ids are skipped; the search result has already been served.
func (s *FactStore) TouchAccess(_ context.Context, ids []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		idx, ok := s.byID[id]
		if !ok {
			continue
		}
		t := at
		s.facts[idx].LastAccessed = &t
		s.facts[idx].AccessCount++
	}
	return nil
}

// CountFacts returns the corpus size.
func (s *FactStore) CountFacts(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.facts), nil
}
