// Package tiles holds the glyph atlas and the fixed-width tile text renderer.
//
// A display row is a slice of tile indices. The atlas assigns every
// (style, character) pair its own tile, with tile 0 reserved as the blank
// tile, and hands back one GlyphMap per style. Surfaces turn tiles back into
// characters through Atlas.Glyph.
package tiles

import "fmt"

// Tile is an index into the atlas.
type Tile uint16

// Blank is the tile written for padding and for characters with no glyph.
const Blank Tile = 0

// Style indexes the glyph maps handed to a Renderer.
type Style int

const (
	StyleNormal Style = iota
	StyleBold
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleBold:
		return "bold"
	default:
		return fmt.Sprintf("style%d", int(s))
	}
}

// DefaultCharset is the glyph subset rasterized for each style.
const DefaultCharset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-,.:/! @_()#"

// GlyphMap maps a character to its tile in one style. Built once by the
// atlas and only read afterwards.
type GlyphMap map[rune]Tile

// Glyph describes what a tile shows.
type Glyph struct {
	Rune  rune
	Style Style
}

// Atlas is the shared tile table for every style.
type Atlas struct {
	glyphs []Glyph
}

// NewAtlas returns an atlas holding only the blank tile.
func NewAtlas() *Atlas {
	return &Atlas{glyphs: []Glyph{{Rune: ' ', Style: StyleNormal}}}
}

// Load adds one tile per distinct character of charset in the given style,
// starting at the next free index, and returns the style's glyph map. Index
// ranges of successive loads never overlap.
func (a *Atlas) Load(style Style, charset string) (GlyphMap, error) {
	m := make(GlyphMap, len(charset))
	for _, r := range charset {
		if r <= MaxMarker {
			return nil, fmt.Errorf("charset for %s style contains marker code %d", style, r)
		}
		if _, ok := m[r]; ok {
			continue
		}
		if len(a.glyphs) > int(^Tile(0)) {
			return nil, fmt.Errorf("atlas full after %d tiles", len(a.glyphs))
		}
		m[r] = Tile(len(a.glyphs))
		a.glyphs = append(a.glyphs, Glyph{Rune: r, Style: style})
	}
	return m, nil
}

// Glyph returns what tile t shows; unknown tiles show as blank.
func (a *Atlas) Glyph(t Tile) Glyph {
	if int(t) >= len(a.glyphs) {
		return a.glyphs[Blank]
	}
	return a.glyphs[t]
}

// Len returns the number of tiles in the atlas, including the blank tile.
func (a *Atlas) Len() int {
	return len(a.glyphs)
}

// NewDefault builds an atlas with normal and bold styles over DefaultCharset
// and a renderer bound to it.
func NewDefault() (*Atlas, *Renderer, error) {
	atlas := NewAtlas()

	normal, err := atlas.Load(StyleNormal, DefaultCharset)
	if err != nil {
		return nil, nil, err
	}
	bold, err := atlas.Load(StyleBold, DefaultCharset)
	if err != nil {
		return nil, nil, err
	}

	return atlas, NewRenderer(normal, bold), nil
}
