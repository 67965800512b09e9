package mcp

import (
	"context"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.RankedFact
	err     error
}

func (m *mockSearchService) SearchFacts(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.RankedFact, error) {
	return m.results, m.err
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	factID   string
	facts    []domain.Fact
	training []string
	err      error
}

func (m *mockKnowledgeService) AddFact(_ context.Context, _ domain.FactDraft) (string, error) {
	return m.factID, m.err
}

func (m *mockKnowledgeService) FactsByCategory(_ context.Context, _ string) ([]domain.Fact, error) {
	return m.facts, m.err
}

func (m *mockKnowledgeService) RecordExchange(
	_ context.Context, _, _ string, _ int,
) (string, error) {
	return "", m.err
}

func (m *mockKnowledgeService) TrainingData(_ context.Context, _ int) ([]string, error) {
	return m.training, m.err
}

// mockResolverService is a mock implementation of driving.ResolverService.
type mockResolverService struct {
	resolution domain.Resolution
	err        error
}

func (m *mockResolverService) Resolve(_ context.Context, _ string) (domain.Resolution, error) {
	return m.resolution, m.err
}
