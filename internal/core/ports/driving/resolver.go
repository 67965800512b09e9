package driving

import (
	"context"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// ResolverService produces a response for every query.
// Resolve is total with respect to its public contract: it always
// returns a non-empty response, falling through pattern, fact,
// history, and unknown tiers in that order.
type ResolverService interface {
	Resolve(ctx context.Context, query string) (domain.Resolution, error)
}
