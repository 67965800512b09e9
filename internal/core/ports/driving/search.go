package driving

import (
	"context"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// SearchService ranks stored facts against a query.
type SearchService interface {
	// SearchFacts returns the best-ranked facts for the query.
	// An empty corpus yields an empty slice, never an error.
	// Facts returned have their access statistics updated as a
	// side effect.
	SearchFacts(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.RankedFact, error)
}
