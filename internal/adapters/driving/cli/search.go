package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchCategory string
	searchWeak     bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored facts",
	Long: `Ranks stored facts against the query.
Each fact is scored by text similarity combined with its stored
importance; weak matches are filtered out unless --weak is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict to one category")
	searchCmd.Flags().BoolVar(&searchWeak, "weak", false, "include matches below the similarity threshold")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		Limit:       searchLimit,
		Category:    searchCategory,
		IncludeWeak: searchWeak,
	}

	results, err := searchService.SearchFacts(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RankedFact) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RankedFact) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Content (combined score, similarity)
		cmd.Printf("  [%d] %s (%.2f, sim %.2f)\n",
			i+1, results[i].Fact.Content, results[i].Combined, results[i].Similarity)
		if results[i].Fact.Category != "" {
			cmd.Printf("      Category: %s\n", results[i].Fact.Category)
		}
		cmd.Println()
	}

	return nil
}
