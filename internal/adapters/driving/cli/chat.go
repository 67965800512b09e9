package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/factotum-labs/factotum-cli/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the assistant",
	Long: `Resolves a message through the tiered response engine.

With an argument, answers once and exits. Without one, starts an
interactive session; type "exit" or press Ctrl+D to leave. Every
exchange is recorded in the conversation log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	ctx := context.Background()

	if len(args) == 1 {
		return answer(ctx, cmd, args[0])
	}

	cmd.Println("Factotum ready. Type \"exit\" to leave.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	cmd.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line != "" {
			if err := answer(ctx, cmd, line); err != nil {
				return err
			}
		}
		cmd.Print("> ")
	}
	return scanner.Err()
}

// answer resolves one message, prints the response, and records the
// exchange. A recording failure is logged but does not fail the chat.
func answer(ctx context.Context, cmd *cobra.Command, message string) error {
	res, err := resolverService.Resolve(ctx, message)
	if err != nil {
		return fmt.Errorf("resolving message: %w", err)
	}

	cmd.Println(res.Text)
	logger.Debug("Tier: %s, similarity: %.3f", res.Tier, res.Similarity)

	if knowledgeService != nil {
		if _, err := knowledgeService.RecordExchange(ctx, message, res.Text, 0); err != nil {
			logger.Warn("Recording exchange failed: %v", err)
		}
	}
	return nil
}
