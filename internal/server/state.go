// Package server exposes the current board frame over HTTP.
package server

import (
	"sync/atomic"

	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/tiles"
)

// State holds the latest presented frame. Frames are swapped in whole, so
// handlers never observe a partially updated board.
type State struct {
	atlas *tiles.Atlas
	frame atomic.Pointer[board.Frame]
}

// NewState creates an empty state that decodes tiles through atlas.
func NewState(atlas *tiles.Atlas) *State {
	return &State{atlas: atlas}
}

// Present stores frame as the current frame.
func (s *State) Present(frame board.Frame) {
	s.frame.Store(&frame)
}

// Load returns the current frame, or false before the first poll.
func (s *State) Load() (board.Frame, bool) {
	f := s.frame.Load()
	if f == nil {
		return board.Frame{}, false
	}
	return *f, true
}

// Atlas returns the atlas used to decode frames.
func (s *State) Atlas() *tiles.Atlas {
	return s.atlas
}
