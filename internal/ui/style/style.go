// Package style provides shared UI styling primitives for the daemon
// prompt and build summaries.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Slate  = lipgloss.Color("#667085")
)

// Styles.
var (
	// Prompt is the daemon input prompt style.
	Prompt = lipgloss.NewStyle().Foreground(Red).Bold(true)
	// Success renders successful build summaries.
	Success = lipgloss.NewStyle().Foreground(Green)
	// Failure renders failed build summaries.
	Failure = lipgloss.NewStyle().Foreground(Red).Bold(true)
	// Hint renders advisory notes such as pending file changes.
	Hint = lipgloss.NewStyle().Foreground(Slate)
	// Warn renders recoverable problems.
	Warn = lipgloss.NewStyle().Foreground(Yellow)
)

// Icons.
const (
	Check = "✓"
	Cross = "✗"
	Dot   = "●"
)
