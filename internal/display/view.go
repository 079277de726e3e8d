package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/statusboard/internal/tiles"
)

// renderBoard renders header, slots, status row and footer.
func (m Model) renderBoard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if !m.hasData {
		b.WriteString(m.spinner.View() + LabelStyle.Render(" Waiting for first poll..."))
	} else {
		b.WriteString(BoardStyle.Render(m.renderSlots()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title, poll spinner and the age of the frame.
func (m Model) renderHeader() string {
	stats := ""
	if m.source != "" {
		stats += " | " + m.source
	}
	if m.hasData {
		stats += fmt.Sprintf(" | %d problems | changed %s", m.frame.Total, m.changedAgo())
	}
	return HeaderStyle.Render(m.spinner.View() + " " + TitleStyle.Render(m.title) + HeaderStatsStyle.Render(stats))
}

// changedAgo formats how long ago the current frame was built.
func (m Model) changedAgo() string {
	if m.frame.BuiltAt.IsZero() {
		return "never"
	}
	secs := int(m.now().Sub(m.frame.BuiltAt) / time.Second)
	switch {
	case secs <= 0:
		return "just now"
	case secs == 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}

// renderSlots renders every visible slot followed by the status row.
// Hidden slots are not drawn.
func (m Model) renderSlots() string {
	var lines []string

	for _, slot := range m.frame.Slots {
		if !slot.Visible {
			continue
		}
		bullet := BulletStyle(slot.Color).Render(Bullet)
		lines = append(lines,
			bullet+" "+m.renderRow(slot.Primary),
			"  "+m.renderRow(slot.Secondary),
		)
	}

	status := m.atlas.Text(m.frame.Status)
	if status != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		style := StatusStyle
		if m.frame.Err != nil {
			style = StatusErrorStyle
		}
		lines = append(lines, style.Render(status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderRow draws a tile row, bold spans in the primary style and normal
// spans in the secondary style.
func (m Model) renderRow(row tiles.Row) string {
	var b strings.Builder
	for _, span := range m.atlas.Spans(row) {
		if span.Style == tiles.StyleBold {
			b.WriteString(PrimaryStyle.Render(span.Text))
		} else {
			b.WriteString(SecondaryStyle.Render(span.Text))
		}
	}
	return b.String()
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
