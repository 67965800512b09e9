package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportLimit  int
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export training data",
	Long: `Exports fact contents and conversation turns as plain text,
one item per line, for use by an external trainer. Facts come first,
then exchanges oldest to newest.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 0, "maximum number of lines (0 = all)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	lines, err := knowledgeService.TrainingData(context.Background(), exportLimit)
	if err != nil {
		return fmt.Errorf("exporting training data: %w", err)
	}

	text := strings.Join(lines, "\n")
	if len(lines) > 0 {
		text += "\n"
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(text), 0600); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		cmd.Printf("Wrote %d lines to %s\n", len(lines), exportOutput)
		return nil
	}

	cmd.Print(text)
	return nil
}
