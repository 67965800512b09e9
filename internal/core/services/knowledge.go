package services

import (
	"context"
	"time"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driving"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// Ensure Knowledge implements the interface.
var _ driving.KnowledgeService = (*Knowledge)(nil)

// Knowledge manages fact ingestion, category reads, the conversation
// log, and the training-data export.
type Knowledge struct {
	facts         driven.FactStore
	conversations driven.ConversationStore
}

// NewKnowledge creates a new knowledge service.
func NewKnowledge(facts driven.FactStore, conversations driven.ConversationStore) *Knowledge {
	return &Knowledge{
		facts:         facts,
		conversations: conversations,
	}
}

// AddFact validates and persists a fact draft.
func (k *Knowledge) AddFact(ctx context.Context, draft domain.FactDraft) (string, error) {
	if err := draft.Validate(); err != nil {
		logger.Warn("Rejected fact draft: %v", err)
		return "", err
	}

	fact, err := k.facts.SaveFact(ctx, draft)
	if err != nil {
		logger.Warn("Saving fact failed: %v", err)
		return "", err
	}

	logger.Info("Added fact %s (category %q)", fact.ID, fact.Category)
	return fact.ID, nil
}

// FactsByCategory returns facts in a category ordered by importance
// descending. Returned facts count as accessed.
func (k *Knowledge) FactsByCategory(ctx context.Context, category string) ([]domain.Fact, error) {
	facts, err := k.facts.FactsByCategory(ctx, category)
	if err != nil {
		logger.Error("Listing facts by category failed: %v", err)
		return []domain.Fact{}, nil
	}
	if len(facts) == 0 {
		return facts, nil
	}

	now := time.Now().UTC()
	ids := make([]string, len(facts))
	for i := range facts {
		ids[i] = facts[i].ID
		facts[i].AccessCount++
		facts[i].LastAccessed = &now
	}
	if err := k.facts.TouchAccess(ctx, ids, now); err != nil {
		logger.Warn("Access-stat update failed: %v", err)
	}

	return facts, nil
}

// RecordExchange appends an exchange to the conversation log.
func (k *Knowledge) RecordExchange(
	ctx context.Context, userInput, response string, feedback int,
) (string, error) {
	exchange, err := k.conversations.SaveExchange(ctx, userInput, response, feedback)
	if err != nil {
		logger.Warn("Recording exchange failed: %v", err)
		return "", err
	}
	return exchange.ID, nil
}

// TrainingData returns fact contents followed by conversation turns,
// oldest first, as a flat list of text lines for the external trainer.
func (k *Knowledge) TrainingData(ctx context.Context, limit int) ([]string, error) {
	data := []string{}

	facts, err := k.facts.ListFacts(ctx, "")
	if err != nil {
		logger.Warn("Training export: listing facts failed: %v", err)
	} else {
		for i := range facts {
			data = append(data, facts[i].Content)
		}
	}

	exchanges, err := k.conversations.RecentExchanges(ctx, 0)
	if err != nil {
		logger.Warn("Training export: listing exchanges failed: %v", err)
	} else {
		// RecentExchanges is newest first; the export is oldest first.
		for i := len(exchanges) - 1; i >= 0; i-- {
			for _, turn := range exchanges[i].Turns() {
				data = append(data, turn.Content)
			}
		}
	}

	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}
	return data, nil
}
