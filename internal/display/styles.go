package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/statusboard/internal/board"
)

// Board color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorCritical = lipgloss.Color("#FF4C68")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#23BD7D")
)

// Bullet is drawn in the slot colour in front of each visible slot.
const Bullet = "●"

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HeaderStatsStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	BoardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PrimaryStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// BulletStyle returns the style for a slot bullet of the given colour.
func BulletStyle(c board.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}
