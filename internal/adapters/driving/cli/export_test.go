package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export", exportCmd.Use)
}

func TestExportCmd_WritesFactsToStdout(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "The capital of France is Paris")
	assert.Contains(t, buf.String(), "Whales are mammals that live in the ocean")
}

func TestExportCmd_WritesToFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "training.txt")
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export", "--output", path})
	defer func() {
		rootCmd.SetArgs(nil)
		exportOutput = "" // Reset flag
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Wrote 3 lines")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "The capital of Germany is Berlin")
}

func TestExportCmd_LimitFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export", "--limit", "1"})
	defer func() {
		rootCmd.SetArgs(nil)
		exportLimit = 0 // Reset flag
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "The capital of France is Paris\n", buf.String())
}

func TestExportCmd_ServiceNotConfigured(t *testing.T) {
	oldService := knowledgeService
	knowledgeService = nil
	defer func() {
		knowledgeService = oldService
	}()

	rootCmd.SetArgs([]string{"export"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
