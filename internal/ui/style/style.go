// Package style holds the CLI palette and status icons.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Steel  = lipgloss.Color("#5B6B7F")
	Teal   = lipgloss.Color("#0F9D8C")
	Amber  = lipgloss.Color("#E8A317")
	Signal = lipgloss.Color("#D64541")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Cached  = "~"
)
