// Package ui provides the small terminal components used by the one-shot
// CLI commands (init, check): an animated spinner with a final status
// line, status symbols, and the colour palette.
//
// The live board itself is drawn by the display package; ui only covers
// line-oriented output that scrolls with the rest of the terminal.
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
package ui
