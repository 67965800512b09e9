package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Factotum resources.
	uriScheme = "factotum://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for facts in a category.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "facts/{category}",
		Name:        "category-facts",
		Description: "Facts in a category, ordered by importance",
		MIMEType:    "application/json",
	}, s.handleCategoryFactsResource)

	// Static resource for the training-data export.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "training-data",
		Name:        "training-data",
		Description: "Fact contents and conversation turns for external training",
		MIMEType:    "text/plain",
	}, s.handleTrainingDataResource)
}

// handleCategoryFactsResource returns the facts of one category.
func (s *Server) handleCategoryFactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Knowledge == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	category := extractCategory(req.Params.URI)
	if category == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	facts, err := s.ports.Knowledge.FactsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing facts: %w", err)
	}

	// Build simplified fact list.
	type factInfo struct {
		ID         string   `json:"id"`
		Content    string   `json:"content"`
		Importance float64  `json:"importance"`
		Tags       []string `json:"tags,omitempty"`
	}

	infos := make([]factInfo, len(facts))
	for i := range facts {
		infos[i] = factInfo{
			ID:         facts[i].ID,
			Content:    facts[i].Content,
			Importance: facts[i].Importance,
			Tags:       facts[i].Tags,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling facts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTrainingDataResource returns the flat training export.
func (s *Server) handleTrainingDataResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Knowledge == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     "",
			}},
		}, nil
	}

	lines, err := s.ports.Knowledge.TrainingData(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("exporting training data: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     strings.Join(lines, "\n"),
		}},
	}, nil
}

// extractCategory extracts the category from a URI like factotum://facts/{category}.
func extractCategory(uri string) string {
	const prefix = uriScheme + "facts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
