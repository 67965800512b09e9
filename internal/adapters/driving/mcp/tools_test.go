package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

func TestServer_handleSearchFacts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked facts", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.RankedFact{
				{
					Fact: domain.Fact{
						ID:         "fact-1",
						Content:    "Paris is the capital of France",
						Category:   "geography",
						Importance: 0.9,
					},
					Similarity: 0.95,
					Combined:   0.935,
				},
			},
		}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchFactsInput{Query: "capital of France", Limit: 10}
		_, output, err := server.handleSearchFacts(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Len(t, output.Results, 1)
		assert.Equal(t, "fact-1", output.Results[0].FactID)
		assert.Equal(t, "Paris is the capital of France", output.Results[0].Content)
		assert.Equal(t, "geography", output.Results[0].Category)
		assert.Equal(t, 0.95, output.Results[0].Similarity)
		assert.Equal(t, 0.935, output.Results[0].Combined)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchFactsInput{Query: "test", Limit: 0}
		_, output, err := server.handleSearchFacts(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{
			err: errors.New("search failed"),
		}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchFactsInput{Query: "test"}
		_, _, err = server.handleSearchFacts(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleAddFact(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the new fact ID", func(t *testing.T) {
		ports := &Ports{
			Search:    &mockSearchService{},
			Knowledge: &mockKnowledgeService{factID: "fact-42"},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AddFactInput{Content: "Whales are mammals", Category: "biology"}
		_, output, err := server.handleAddFact(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "fact-42", output.FactID)
	})

	t.Run("errors without knowledge service", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AddFactInput{Content: "Whales are mammals"}
		_, _, err = server.handleAddFact(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("propagates validation errors", func(t *testing.T) {
		ports := &Ports{
			Search:    &mockSearchService{},
			Knowledge: &mockKnowledgeService{err: domain.ErrEmptyContent},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AddFactInput{Content: ""}
		_, _, err = server.handleAddFact(ctx, nil, input)

		require.ErrorIs(t, err, domain.ErrEmptyContent)
	})
}

func TestServer_handleResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the resolution", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Resolver: &mockResolverService{
				resolution: domain.Resolution{
					Text:       "Based on my knowledge: Paris is the capital of France",
					Tier:       domain.TierFact,
					FactIDs:    []string{"fact-1"},
					Similarity: 0.95,
				},
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ResolveInput{Query: "capital of France?"}
		_, output, err := server.handleResolve(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "fact", output.Tier)
		assert.Equal(t, []string{"fact-1"}, output.FactIDs)
		assert.Contains(t, output.Response, "Paris")
	})

	t.Run("errors without resolver service", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ResolveInput{Query: "anything"}
		_, _, err = server.handleResolve(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}
