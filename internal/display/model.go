package display

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/tiles"
)

// DefaultTitle is shown in the header.
const DefaultTitle = "statusboard"

// FrameMsg carries a newly rendered frame into the program.
type FrameMsg board.Frame

// SpinnerFrames are the poll indicator animation frames.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// Model is the Bubble Tea model for the live board.
type Model struct {
	atlas   *tiles.Atlas
	frame   board.Frame
	hasData bool
	spinner spinner.Model

	title     string
	source    string
	refresh   func()
	refreshes int
	now       func() time.Time

	width    int
	height   int
	showHelp bool
	quitting bool
}

// Option customizes a Model.
type Option func(*Model)

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithSource shows where the board data comes from in the header.
func WithSource(source string) Option {
	return func(m *Model) { m.source = source }
}

// WithRefresh sets the function called when the user asks for an early poll.
func WithRefresh(fn func()) Option {
	return func(m *Model) { m.refresh = fn }
}

// WithClock overrides the clock used for the "changed ... ago" header.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates a board model that decodes tiles through atlas.
func NewModel(atlas *tiles.Atlas, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	m := Model{
		atlas:   atlas,
		spinner: sp,
		title:   DefaultTitle,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Frame returns the frame currently shown.
func (m Model) Frame() board.Frame {
	return m.frame
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case FrameMsg:
		m.frame = board.Frame(msg)
		m.hasData = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderBoard()
}
