package driven

import "github.com/factotum-labs/factotum-cli/internal/core/domain"

// ConfigStore loads engine tuning from persistent configuration.
type ConfigStore interface {
	// EngineConfig returns the configured engine constants.
	// Missing keys fall back to domain defaults.
	EngineConfig() (domain.EngineConfig, error)
}
