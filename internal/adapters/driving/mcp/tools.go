package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// SearchFactsInput is the input schema for the search_facts tool.
type SearchFactsInput struct {
	Query    string `json:"query" jsonschema:"the query to rank stored facts against"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Category string `json:"category,omitempty" jsonschema:"restrict the search to one fact category"`
}

// SearchFactsOutput is the output schema for the search_facts tool.
type SearchFactsOutput struct {
	Results []RankedFactOutput `json:"results"`
	Count   int                `json:"count"`
}

// RankedFactOutput represents a single ranked fact.
type RankedFactOutput struct {
	FactID     string  `json:"fact_id"`
	Content    string  `json:"content"`
	Category   string  `json:"category,omitempty"`
	Importance float64 `json:"importance"`
	Similarity float64 `json:"similarity"`
	Combined   float64 `json:"combined"`
}

// AddFactInput is the input schema for the add_fact tool.
type AddFactInput struct {
	Content    string   `json:"content" jsonschema:"the fact text to store"`
	Category   string   `json:"category,omitempty" jsonschema:"category label for the fact"`
	Importance float64  `json:"importance,omitempty" jsonschema:"importance between 0 and 1 (default 0.8)"`
	Tags       []string `json:"tags,omitempty" jsonschema:"free-form tags"`
}

// AddFactOutput is the output schema for the add_fact tool.
type AddFactOutput struct {
	FactID string `json:"fact_id"`
}

// ResolveInput is the input schema for the resolve tool.
type ResolveInput struct {
	Query string `json:"query" jsonschema:"the user query to resolve into a response"`
}

// ResolveOutput is the output schema for the resolve tool.
type ResolveOutput struct {
	Response   string   `json:"response"`
	Tier       string   `json:"tier"`
	FactIDs    []string `json:"fact_ids,omitempty"`
	Similarity float64  `json:"similarity,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_facts",
		Description: "Rank stored facts against a query by text similarity and importance",
	}, s.handleSearchFacts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_fact",
		Description: "Store a new fact in the knowledge base",
	}, s.handleAddFact)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a query into a response through the tiered engine",
	}, s.handleResolve)
}

// handleSearchFacts handles the search_facts tool invocation.
func (s *Server) handleSearchFacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchFactsInput,
) (*mcp.CallToolResult, SearchFactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit, Category: input.Category}
	results, err := s.ports.Search.SearchFacts(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchFactsOutput{}, err
	}

	output := SearchFactsOutput{
		Results: make([]RankedFactOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = RankedFactOutput{
			FactID:     results[i].Fact.ID,
			Content:    results[i].Fact.Content,
			Category:   results[i].Fact.Category,
			Importance: results[i].Fact.Importance,
			Similarity: results[i].Similarity,
			Combined:   results[i].Combined,
		}
	}

	return nil, output, nil
}

// handleAddFact handles the add_fact tool invocation.
func (s *Server) handleAddFact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddFactInput,
) (*mcp.CallToolResult, AddFactOutput, error) {
	if s.ports.Knowledge == nil {
		return nil, AddFactOutput{}, errors.New("knowledge service not configured")
	}

	id, err := s.ports.Knowledge.AddFact(ctx, domain.FactDraft{
		Content:    input.Content,
		Category:   input.Category,
		Importance: input.Importance,
		Tags:       input.Tags,
	})
	if err != nil {
		return nil, AddFactOutput{}, err
	}

	return nil, AddFactOutput{FactID: id}, nil
}

// handleResolve handles the resolve tool invocation.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	if s.ports.Resolver == nil {
		return nil, ResolveOutput{}, errors.New("resolver service not configured")
	}

	res, err := s.ports.Resolver.Resolve(ctx, input.Query)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	return nil, ResolveOutput{
		Response:   res.Text,
		Tier:       string(res.Tier),
		FactIDs:    res.FactIDs,
		Similarity: res.Similarity,
	}, nil
}
