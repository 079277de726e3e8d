// Package board lays ranked status items out on the fixed slot grid and
// renders each slot's text rows.
package board

import (
	"fmt"

	"github.com/rileyhilliard/statusboard/internal/status"
)

// DefaultSlots is the number of item slots on the board.
const DefaultSlots = 10

// EmptyMessage is shown on the status row when nothing is in a problem state.
const EmptyMessage = "Nothing to report"

// Page is the slot assignment for one ranked list.
type Page struct {
	Visible  []status.Item // assigned to slots 0..len(Visible)-1
	Hidden   int           // slots left empty
	Total    int
	Overflow int // items that did not fit, never negative
}

// Paginate assigns the first n items of ranked to slots.
func Paginate(ranked []status.Item, n int) Page {
	if n < 0 {
		n = 0
	}
	visible := ranked
	if len(visible) > n {
		visible = visible[:n]
	}
	return Page{
		Visible:  visible,
		Hidden:   n - len(visible),
		Total:    len(ranked),
		Overflow: max(0, len(ranked)-n),
	}
}

// Message returns the status row text: the empty-state message when there are
// no items, "and K more..." when some did not fit, and nothing otherwise.
func (p Page) Message() string {
	switch {
	case p.Total == 0:
		return EmptyMessage
	case p.Overflow > 0:
		return fmt.Sprintf("and %d more...", p.Overflow)
	default:
		return ""
	}
}
