package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

var (
	factCategory    string
	factImportance  float64
	factTags        []string
	factSourceURL   string
	factSourceTitle string
)

var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Manage stored facts",
}

var factAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Store a new fact",
	Long: `Stores a new fact in the knowledge base.

Examples:
  factotum fact add "Paris is the capital of France" --category geography
  factotum fact add "Water boils at 100 degrees" -i 0.9 --tag physics`,
	Args: cobra.ExactArgs(1),
	RunE: runFactAdd,
}

var factListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the facts in a category",
	Long: `Lists facts in a category, ordered by importance descending.
Listing counts as access: each fact's access statistics are updated.`,
	Args: cobra.ExactArgs(1),
	RunE: runFactList,
}

func init() {
	factAddCmd.Flags().StringVarP(&factCategory, "category", "c", "", "category label")
	factAddCmd.Flags().Float64VarP(&factImportance, "importance", "i", 0, "importance between 0 and 1 (default 0.8)")
	factAddCmd.Flags().StringArrayVarP(&factTags, "tag", "t", nil, "free-form tag (repeatable)")
	factAddCmd.Flags().StringVar(&factSourceURL, "source-url", "", "URL the fact came from")
	factAddCmd.Flags().StringVar(&factSourceTitle, "source-title", "", "title of the fact's source")

	factCmd.AddCommand(factAddCmd)
	factCmd.AddCommand(factListCmd)
	rootCmd.AddCommand(factCmd)
}

func runFactAdd(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	draft := domain.FactDraft{
		Content:    args[0],
		Category:   factCategory,
		Importance: factImportance,
		Tags:       factTags,
	}
	if factSourceURL != "" || factSourceTitle != "" {
		draft.Source = &domain.FactSource{
			URL:   factSourceURL,
			Title: factSourceTitle,
		}
	}

	id, err := knowledgeService.AddFact(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("adding fact: %w", err)
	}

	cmd.Printf("Added fact %s\n", id)
	return nil
}

func runFactList(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	facts, err := knowledgeService.FactsByCategory(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("listing facts: %w", err)
	}

	if len(facts) == 0 {
		cmd.Println("No facts found.")
		return nil
	}

	cmd.Printf("Facts in %q:\n\n", args[0])
	for i := range facts {
		cmd.Printf("  [%d] %s (importance %.2f, accessed %d times)\n",
			i+1, facts[i].Content, facts[i].Importance, facts[i].AccessCount)
	}
	return nil
}
