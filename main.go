// Command factotum is a local-first knowledge assistant.
package main

import (
	"fmt"
	"os"

	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/config/file"
	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/storage/sqlite"
	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/vectorizer/tfidf"
	"github.com/factotum-labs/factotum-cli/internal/adapters/driving/cli"
	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/services"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening knowledge store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	cfg, err := configStore.EngineConfig()
	if err != nil {
		logger.Warn("Loading engine config failed, using defaults: %v", err)
		cfg = domain.DefaultEngineConfig()
	}

	replies, err := file.NewReplyStore("")
	if err != nil {
		return fmt.Errorf("opening reply store: %w", err)
	}

	vectorizer := tfidf.New()
	facts := store.FactStore()
	conversations := store.ConversationStore()

	ranker := services.NewRanker(facts, vectorizer, cfg)
	knowledge := services.NewKnowledge(facts, conversations)
	resolver := services.NewResolver(ranker, conversations, vectorizer, replies, cfg)

	cli.SetServices(ranker, knowledge, resolver)
	cli.SetReplyWatcher(replies.Watch)
	cli.SetVersion(version)
	return cli.Execute()
}
