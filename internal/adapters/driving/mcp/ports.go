package mcp

import (
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks facts against queries.
	Search driving.SearchService

	// Knowledge manages fact ingestion and exports.
	Knowledge driving.KnowledgeService

	// Resolver produces tiered responses.
	Resolver driving.ResolverService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Knowledge and Resolver are optional; their tools and resources
	// report a clear error when invoked without them.
	return nil
}
