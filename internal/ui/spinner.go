package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerState is where a spinner is in its lifecycle.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is how often the animation advances.
const spinnerInterval = 80 * time.Millisecond

// Spinner shows an animated label on one terminal line while a slow step
// (an API probe, a config write) runs, then replaces it with a result line.
type Spinner struct {
	mu           sync.Mutex
	label        string
	detail       string
	state        SpinnerState
	frame        int
	startTime    time.Time
	stopChan     chan struct{}
	doneChan     chan struct{}
	output       func(string)
	running      bool
	lastRendered string
}

// NewSpinner creates a spinner with the given label.
// Output defaults to fmt.Print; use SetOutput to redirect it.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		label:  label,
		state:  SpinnerPending,
		output: func(s string) { fmt.Print(s) },
	}
}

// SetOutput sets the function that receives rendered text.
func (s *Spinner) SetOutput(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = fn
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.state = SpinnerInProgress
	s.startTime = time.Now()
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.mu.Unlock()

	s.render()

	go s.animate()
}

// Stop halts the animation without changing state.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan
}

// Success stops the spinner and prints a success line. detail, when given,
// is appended in muted text (e.g. "3 hosts, 7 services").
func (s *Spinner) Success(detail ...string) {
	s.finish(SpinnerSuccess, detail)
}

// Fail stops the spinner and prints a failure line.
func (s *Spinner) Fail(detail ...string) {
	s.finish(SpinnerFailed, detail)
}

func (s *Spinner) finish(state SpinnerState, detail []string) {
	s.Stop()
	s.mu.Lock()
	s.state = state
	s.detail = strings.Join(detail, " ")
	s.mu.Unlock()
	s.renderFinal()
}

// State returns the current state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Label returns the spinner's label.
func (s *Spinner) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// SetLabel updates the label shown on the next frame.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	style := lipgloss.NewStyle().Foreground(ColorInfo)
	line := fmt.Sprintf("\r%s %s...", style.Render(spinnerFrames[s.frame]), s.label)

	s.clearLine()
	s.output(line)
	s.lastRendered = line
}

// clearLine blanks the previously rendered frame. Callers hold s.mu.
func (s *Spinner) clearLine() {
	if s.lastRendered == "" {
		return
	}
	s.output("\r" + strings.Repeat(" ", len([]rune(s.lastRendered))) + "\r")
}

func (s *Spinner) renderFinal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var symbol string
	var style lipgloss.Style

	switch s.state {
	case SpinnerSuccess:
		symbol = SymbolSuccess
		style = lipgloss.NewStyle().Foreground(ColorSuccess)
	case SpinnerFailed:
		symbol = SymbolFail
		style = lipgloss.NewStyle().Foreground(ColorError)
	default:
		symbol = SymbolPending
		style = lipgloss.NewStyle().Foreground(ColorMuted)
	}
	muted := lipgloss.NewStyle().Foreground(ColorMuted)

	s.clearLine()
	s.lastRendered = ""

	parts := []string{style.Render(symbol), s.label}
	if s.detail != "" {
		parts = append(parts, muted.Render(s.detail))
	}
	parts = append(parts, muted.Render(formatDuration(time.Since(s.startTime))))
	s.output(strings.Join(parts, " ") + "\n")
}

// formatDuration formats a duration for display (e.g., "0.05s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
