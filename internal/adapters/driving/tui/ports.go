// Package tui provides the interactive chat terminal interface for
// Factotum. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Resolver produces a response for every chat message.
	Resolver driving.ResolverService

	// Knowledge records the chat exchanges.
	Knowledge driving.KnowledgeService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Resolver == nil {
		return ErrMissingResolverService
	}
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	return nil
}
