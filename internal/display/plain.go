package display

import (
	"bufio"
	"io"

	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/tiles"
)

// PlainBullet marks a visible slot in plain output.
const PlainBullet = "*"

// WritePlain writes one frame as plain text: two lines per visible slot
// and the status row, if any, last.
func WritePlain(w io.Writer, frame board.Frame, atlas *tiles.Atlas) error {
	bw := bufio.NewWriter(w)

	for _, slot := range frame.Slots {
		if !slot.Visible {
			continue
		}
		bw.WriteString(PlainBullet + " " + atlas.Text(slot.Primary) + "\n")
		bw.WriteString("  " + atlas.Text(slot.Secondary) + "\n")
	}

	if status := atlas.Text(frame.Status); status != "" {
		bw.WriteString(status + "\n")
	}

	return bw.Flush()
}
