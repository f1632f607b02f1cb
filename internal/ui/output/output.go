// Package output renders user-facing build reporting with a terminal-aware
// color profile.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile to use for interactive output.
// NO_COLOR disables coloring entirely; otherwise the terminal's
// capabilities are detected automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ApplyProfile pins the global lipgloss renderer to the detected profile,
// so styled output degrades to plain text on dumb terminals and pipes.
func ApplyProfile() {
	lipgloss.DefaultRenderer().SetColorProfile(ColorProfile())
}
