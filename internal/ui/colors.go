package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication, as ANSI codes for broad terminal
// compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// DisableColors switches all lipgloss output to plain text.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
