// Package cli implements the factotum command-line interface.
// Commands are thin shells over the driving ports; services are
// injected once at startup via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/factotum-labs/factotum-cli/internal/core/ports/driving"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Nil until SetServices is called; commands guard
// against running unconfigured.
var (
	searchService    driving.SearchService
	knowledgeService driving.KnowledgeService
	resolverService  driving.ResolverService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "factotum",
	Short: "A personal knowledge assistant for your terminal",
	Long: `Factotum is a local-first knowledge assistant.

Store facts, search them by text similarity and importance, and chat
with a tiered response engine that answers from patterns, stored
facts, or past conversations. All data stays on your machine.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the driving services used by the commands.
func SetServices(
	search driving.SearchService,
	knowledge driving.KnowledgeService,
	resolver driving.ResolverService,
) {
	searchService = search
	knowledgeService = knowledge
	resolverService = resolver
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
