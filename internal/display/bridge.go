package display

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/tiles"
)

// Bridge forwards frames to a running Bubble Tea program via
// program.Send(). This is goroutine-safe.
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a new bridge that forwards frames to the given program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// Present sends the frame to the program.
func (b *Bridge) Present(frame board.Frame) {
	b.program.Send(FrameMsg(frame))
}

// PlainPresenter writes every frame it receives as plain text, separated by
// a blank line.
type PlainPresenter struct {
	mu    sync.Mutex
	w     io.Writer
	atlas *tiles.Atlas
	n     int
	err   error
}

// NewPlainPresenter creates a presenter writing to w.
func NewPlainPresenter(w io.Writer, atlas *tiles.Atlas) *PlainPresenter {
	return &PlainPresenter{w: w, atlas: atlas}
}

// Present writes the frame. After the first write error frames are dropped.
func (p *PlainPresenter) Present(frame board.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return
	}
	if p.n > 0 {
		if _, p.err = io.WriteString(p.w, "\n"); p.err != nil {
			return
		}
	}
	p.err = WritePlain(p.w, frame, p.atlas)
	p.n++
}

// Err returns the first write error, if any.
func (p *PlainPresenter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
