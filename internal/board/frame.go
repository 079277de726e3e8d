package board

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/status"
	"github.com/rileyhilliard/statusboard/internal/tiles"
	"github.com/rileyhilliard/statusboard/internal/tz"
)

// Color is a 24-bit RGB bullet colour.
type Color uint32

// Hex returns the colour as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// Bullet colours.
const (
	ColorOK       Color = 0x23BD7D
	ColorWarning  Color = 0xFFA856
	ColorCritical Color = 0xFF4C68
	ColorUnknown  Color = 0xB33AF6
	ColorNone     Color = 0x000000
)

var (
	hostColors    = []Color{ColorOK, ColorCritical, ColorUnknown}
	serviceColors = []Color{ColorOK, ColorWarning, ColorCritical, ColorUnknown}
)

// StateColor returns the bullet colour for an item's state.
func StateColor(i status.Item) Color {
	table := serviceColors
	if i.Kind == status.Host {
		table = hostColors
	}
	if i.State < 0 || i.State >= len(table) {
		return ColorUnknown
	}
	return table[i.State]
}

// Slot is one row group of the board.
type Slot struct {
	Visible   bool
	Item      status.Item
	Color     Color
	Primary   tiles.Row
	Secondary tiles.Row
}

// Frame is everything one render pass puts on the board. Frames are built
// whole and handed to surfaces as values.
type Frame struct {
	Slots  []Slot
	Status tiles.Row
	// StatusText is the plain text rendered into Status.
	StatusText string
	Total      int
	Overflow   int
	Err        error
	BuiltAt    time.Time
}

// VisibleCount returns the number of visible slots.
func (f Frame) VisibleCount() int {
	n := 0
	for _, s := range f.Slots {
		if s.Visible {
			n++
		}
	}
	return n
}

// Builder renders pages into frames.
type Builder struct {
	slots    int
	renderer *tiles.Renderer
	clock    *tz.Calculator
}

// NewBuilder returns a builder for a board with the given number of slots.
func NewBuilder(slots int, renderer *tiles.Renderer, clock *tz.Calculator) *Builder {
	if slots <= 0 {
		slots = DefaultSlots
	}
	return &Builder{slots: slots, renderer: renderer, clock: clock}
}

// Slots returns the number of slots on the board.
func (b *Builder) Slots() int {
	return b.slots
}

// PrimaryText is the bold first row of a slot.
func PrimaryText(i status.Item) string {
	return tiles.Mark(tiles.StyleBold) + i.DisplayName()
}

// SecondaryText is the second row of a slot: the state and when it began.
func (b *Builder) SecondaryText(i status.Item) string {
	return tiles.Mark(tiles.StyleNormal) + i.StateLabel() + " since " + tz.Since(b.clock, i.LastHardStateChange)
}

// Build paginates a ranked list and renders every slot.
func (b *Builder) Build(ranked []status.Item, at time.Time) Frame {
	page := Paginate(ranked, b.slots)

	frame := Frame{
		Slots:      make([]Slot, b.slots),
		StatusText: page.Message(),
		Total:      page.Total,
		Overflow:   page.Overflow,
		BuiltAt:    at,
	}

	for i := range frame.Slots {
		if i >= len(page.Visible) {
			frame.Slots[i] = Slot{Color: ColorNone}
			continue
		}
		item := page.Visible[i]
		frame.Slots[i] = Slot{
			Visible:   true,
			Item:      item,
			Color:     StateColor(item),
			Primary:   b.renderer.RenderRow(PrimaryText(item)),
			Secondary: b.renderer.RenderRow(b.SecondaryText(item)),
		}
	}
	frame.Status = b.renderer.RenderRow(frame.StatusText)

	return frame
}

// ErrorFrame keeps the slots of prev and replaces the status row with the
// error. A stale but valid board is preferred over a blank one.
func (b *Builder) ErrorFrame(prev Frame, err error, at time.Time) Frame {
	frame := Frame{
		Slots:      make([]Slot, b.slots),
		StatusText: "ERROR: " + errors.Summary(err),
		Total:      prev.Total,
		Overflow:   prev.Overflow,
		Err:        err,
		BuiltAt:    at,
	}
	copy(frame.Slots, prev.Slots)
	frame.Status = b.renderer.RenderRow(frame.StatusText)
	return frame
}
