package cli

import (
	"context"
	"math/rand"

	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/storage/memory"
	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/vectorizer/tfidf"
	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/services"
)

// testReplyStore implements driven.ReplyStore with a single reply per
// category, so command output is deterministic.
type testReplyStore struct{}

func (testReplyStore) Replies(category domain.ReplyCategory) ([]string, error) {
	switch category {
	case domain.ReplyGreeting:
		return []string{"Hello there!"}, nil
	case domain.ReplyFarewell:
		return []string{"See you soon."}, nil
	case domain.ReplyUnknown:
		return []string{"I do not know that yet."}, nil
	case domain.ReplyAcknowledgment:
		return []string{"Understood."}, nil
	default:
		return nil, domain.ErrReplySetEmpty
	}
}

// setupTestServices wires real services over in-memory stores, seeded
// with a few facts. Returns a cleanup that restores the previous
// service set.
func setupTestServices() func() {
	oldSearch := searchService
	oldKnowledge := knowledgeService
	oldResolver := resolverService

	facts := memory.NewFactStore()
	conversations := memory.NewConversationStore()
	vectorizer := tfidf.New()
	cfg := domain.DefaultEngineConfig()

	ctx := context.Background()
	seed := []domain.FactDraft{
		{Content: "The capital of France is Paris", Category: "geography", Importance: 0.9},
		{Content: "The capital of Germany is Berlin", Category: "geography", Importance: 0.8},
		{Content: "Whales are mammals that live in the ocean", Category: "biology", Importance: 0.5},
	}
	for _, draft := range seed {
		facts.SaveFact(ctx, draft) //nolint:errcheck
	}

	ranker := services.NewRanker(facts, vectorizer, cfg)
	knowledge := services.NewKnowledge(facts, conversations)
	resolver := services.NewResolver(
		ranker, conversations, vectorizer, testReplyStore{}, cfg,
		services.WithRand(rand.New(rand.NewSource(1))),
	)

	SetServices(ranker, knowledge, resolver)

	return func() {
		searchService = oldSearch
		knowledgeService = oldKnowledge
		resolverService = oldResolver
	}
}
