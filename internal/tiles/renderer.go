package tiles

import "strings"

// RowWidth is the number of cells in one text row of the board.
const RowWidth = 66

// MaxMarker is the highest character code treated as a style switch.
const MaxMarker = 10

// Row is one fixed-width line of tiles.
type Row []Tile

// NewRow returns a blank row of RowWidth cells.
func NewRow() Row {
	return make(Row, RowWidth)
}

// Mark returns the in-band marker that switches subsequent characters to style.
func Mark(style Style) string {
	return string(rune(style))
}

// Renderer writes text into tile rows. It keeps no state between calls
// besides its read-only glyph maps, so one renderer can serve every row.
type Renderer struct {
	maps []GlyphMap
}

// NewRenderer returns a renderer; maps[i] is used for style i.
func NewRenderer(maps ...GlyphMap) *Renderer {
	return &Renderer{maps: maps}
}

// Render fills every cell of dst from s. A character with code <= MaxMarker
// selects the glyph map for the following characters instead of being
// drawn; markers naming a style the renderer does not have are ignored.
// Characters without a glyph become blank tiles, the tail of the row is
// blank-padded, and text past the end of the row is dropped.
func (r *Renderer) Render(dst Row, s string) {
	style := StyleNormal
	col := 0

	for _, ch := range s {
		if col >= len(dst) {
			break
		}
		if ch <= MaxMarker {
			if int(ch) < len(r.maps) {
				style = Style(ch)
			}
			continue
		}

		tile := Blank
		if int(style) < len(r.maps) {
			if t, ok := r.maps[style][ch]; ok {
				tile = t
			}
		}
		dst[col] = tile
		col++
	}

	for ; col < len(dst); col++ {
		dst[col] = Blank
	}
}

// RenderRow allocates a new row and renders s into it.
func (r *Renderer) RenderRow(s string) Row {
	row := NewRow()
	r.Render(row, s)
	return row
}

// Text decodes a row back into its characters, trimming trailing blanks.
func (a *Atlas) Text(row Row) string {
	var b strings.Builder
	for _, t := range row {
		b.WriteRune(a.Glyph(t).Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Span is a run of consecutive cells sharing one style.
type Span struct {
	Style Style
	Text  string
}

// Spans decodes a row into style runs, for surfaces that draw bold and
// normal text differently. Trailing blank cells are dropped.
func (a *Atlas) Spans(row Row) []Span {
	end := len(row)
	for end > 0 && row[end-1] == Blank {
		end--
	}

	var spans []Span
	var b strings.Builder
	current := StyleNormal
	for i, t := range row[:end] {
		g := a.Glyph(t)
		style := g.Style
		if t == Blank {
			// Blanks inherit the surrounding style so a space does not split a run.
			style = current
		}
		if i > 0 && style != current {
			spans = append(spans, Span{Style: current, Text: b.String()})
			b.Reset()
		}
		current = style
		b.WriteRune(g.Rune)
	}
	if b.Len() > 0 {
		spans = append(spans, Span{Style: current, Text: b.String()})
	}
	return spans
}
