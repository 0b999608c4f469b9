package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin mocha tones used by boxed messages.
var (
	Text  = lipgloss.Color("#cdd6f4")
	Mauve = lipgloss.Color("#cba6f7")
	Red   = lipgloss.Color("#f38ba8")

	AccentColor = Mauve
	HiRed       = Red
)
