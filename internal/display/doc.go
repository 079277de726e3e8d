// Package display draws board frames on a terminal.
//
// Two surfaces are provided. Model is a Bubble Tea program that shows the
// board live: a header with the poll spinner and last change time, one
// bullet and two rows per visible slot, and the status row underneath.
// WritePlain prints a single frame as plain text for pipes, logs and
// --once runs.
//
// Both surfaces decode tile rows back to characters through the glyph
// atlas, so they show exactly what was rendered into the tile grid,
// truncation and missing glyphs included.
//
// # Message Flow
//
//  1. The poller builds a frame and calls Bridge.Present
//  2. Bridge sends a FrameMsg to the program with program.Send
//  3. Update stores the frame and View redraws
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Poll now
//	?           - Toggle help overlay
package display
