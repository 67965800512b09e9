package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/factotum-labs/factotum-cli/internal/adapters/driving/tui"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// replyWatcher, when set, runs for the lifetime of the TUI and
// hot-reloads the reply sets on file changes.
var replyWatcher func(context.Context) error

// SetReplyWatcher installs the reply hot-reload hook.
func SetReplyWatcher(watch func(context.Context) error) {
	replyWatcher = watch
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive chat UI",
	Long: `Launch the interactive terminal user interface for Factotum.

The TUI provides a chat view over the tiered response engine. Every
exchange is recorded in the conversation log.

Controls:
  Enter  - Send message
  Esc    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// The TUI is long-running, so reply edits should take effect
	// without a restart.
	if replyWatcher != nil {
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()

		go func() {
			if err := replyWatcher(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Reply watcher stopped: %v", err)
			}
		}()
	}

	ports := &tui.Ports{
		Resolver:  resolverService,
		Knowledge: knowledgeService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
