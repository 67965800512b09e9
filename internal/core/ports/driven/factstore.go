package driven

import (
	"context"
	"time"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// FactStore persists facts and their access statistics.
// Implementations must support concurrent readers with serialized
// writers; access-stat increments must be atomic per fact.
type FactStore interface {
	// SaveFact stores a new fact built from the draft and returns it.
	// The store assigns ID and CreatedAt. IDs are never reused.
	SaveFact(ctx context.Context, draft domain.FactDraft) (*domain.Fact, error)

	// GetFact retrieves a fact by ID.
	GetFact(ctx context.Context, id string) (*domain.Fact, error)

	// ListFacts returns the full corpus in insertion order, optionally
	// restricted to a category. Insertion order is the documented
	// tie-break for equal ranking scores.
	ListFacts(ctx context.Context, category string) ([]domain.Fact, error)

	// FactsByCategory returns facts in a category ordered by
	// importance descending.
	FactsByCategory(ctx context.Context, category string) ([]domain.Fact, error)

	// TouchAccess sets last_accessed and increments access_count for
	// each id. The increment must not be a read-modify-write race.
	TouchAccess(ctx context.Context, ids []string, at time.Time) error

	// CountFacts returns the corpus size.
	CountFacts(ctx context.Context) (int, error)
}

// ConversationStore persists the append-only exchange log.
type ConversationStore interface {
	// SaveExchange appends an exchange and returns it with ID and
	// Timestamp assigned.
	SaveExchange(ctx context.Context, userInput, response string, feedback int) (*domain.Exchange, error)

	// RecentExchanges returns up to limit exchanges, newest first.
	RecentExchanges(ctx context.Context, limit int) ([]domain.Exchange, error)

	// CountExchanges returns the log size.
	CountExchanges(ctx context.Context) (int, error)
}
