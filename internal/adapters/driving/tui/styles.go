package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains pre-configured lipgloss styles for the chat view.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// User style for the user's side of the transcript.
	User lipgloss.Style

	// Assistant style for Factotum's side of the transcript.
	Assistant lipgloss.Style

	// Muted style for tier annotations and hints.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Prompt style for the input prompt marker.
	Prompt lipgloss.Style
}

// DefaultStyles returns the default chat styles.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")),
		User: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")),
		Assistant: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6E3A1")),
	}
}
