package driving

import (
	"context"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// KnowledgeService manages fact ingestion and read-side exports.
type KnowledgeService interface {
	// AddFact validates and persists a fact draft, returning the new
	// fact ID. Empty content yields domain.ErrEmptyContent.
	AddFact(ctx context.Context, draft domain.FactDraft) (string, error)

	// FactsByCategory returns facts in a category ordered by
	// importance descending, updating their access statistics.
	FactsByCategory(ctx context.Context, category string) ([]domain.Fact, error)

	// RecordExchange appends a user/assistant exchange to the
	// conversation log and returns its ID.
	RecordExchange(ctx context.Context, userInput, response string, feedback int) (string, error)

	// TrainingData returns a read-only snapshot of fact contents and
	// conversation turns for the external ML trainer. limit <= 0
	// means no limit.
	TrainingData(ctx context.Context, limit int) ([]string, error)
}
