// Package tui renders run output: step separators, the retry prompt,
// and the end-of-run summary.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
	ColorText    = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"} // Text
)

// Styles contains the reusable lipgloss styles for run output.
type Styles struct {
	Separator lipgloss.Style
	StepName  lipgloss.Style
	Heading   lipgloss.Style

	Succeeded lipgloss.Style
	Failed    lipgloss.Style
	Skipped   lipgloss.Style
	Ignored   lipgloss.Style

	Prompt    lipgloss.Style
	PromptKey lipgloss.Style
}

// DefaultStyles returns the default run output styles.
func DefaultStyles() Styles {
	return Styles{
		Separator: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StepName: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText),

		Succeeded: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Failed: lipgloss.NewStyle().
			Foreground(ColorError),

		Skipped: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Ignored: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Prompt: lipgloss.NewStyle().
			Foreground(ColorText),

		PromptKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
	}
}
