package cli

import (
	"context"
	stderrors "errors"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/display"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/poll"
	"github.com/rileyhilliard/statusboard/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// debugLogFile receives log output while the TUI owns the terminal.
const debugLogFile = "statusboard-debug.log"

// runOptions are the command-line overrides for run.
type runOptions struct {
	Once     bool
	NoTUI    bool
	Interval time.Duration
	Listen   string
	Slots    int
	Zone     string
}

// apply copies every set override onto cfg.
func (o runOptions) apply(cfg *config.Config) {
	if o.Interval > 0 {
		cfg.Poll.Interval = o.Interval
	}
	if o.Listen != "" {
		cfg.Server.Listen = o.Listen
	}
	if o.Slots > 0 {
		cfg.Board.Slots = o.Slots
	}
	if o.Zone != "" {
		cfg.Board.Timezone = o.Zone
	}
}

var runOpts runOptions

// isTerminal reports whether stdout can host the TUI.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the monitoring API and show the board",
	Long: `Poll the monitoring API on an interval and keep the worst problems on
the board.

On a terminal the board is an interactive TUI. When stdout is not a
terminal, or with --no-tui, each new frame is printed as plain text.
With --listen the current frame is also served over HTTP.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Poll now
  ?           Show help

Examples:
  statusboard run
  statusboard run --once
  statusboard run --interval 10s --slots 6
  statusboard run --listen :8080 --no-tui`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(runOpts.apply)
		if err != nil {
			return err
		}
		return runBoard(cmd.Context(), cmd.OutOrStdout(), cfg, runOpts)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runOpts.Once, "once", false, "poll once, print the board and exit")
	runCmd.Flags().BoolVar(&runOpts.NoTUI, "no-tui", false, "print frames as plain text instead of the TUI")
	runCmd.Flags().DurationVar(&runOpts.Interval, "interval", 0, "poll interval (e.g., 10s, 1m)")
	runCmd.Flags().StringVar(&runOpts.Listen, "listen", "", "serve the board over HTTP on this address (e.g., :8080)")
	runCmd.Flags().IntVar(&runOpts.Slots, "slots", 0, "number of board slots")
	runCmd.Flags().StringVar(&runOpts.Zone, "zone", "", "timezone for 'since' timestamps")
	rootCmd.AddCommand(runCmd)
}

func runBoard(ctx context.Context, out io.Writer, cfg *config.Config, opts runOptions) error {
	stack, err := newStack(cfg, logger.NewEnvLogger("[icinga]"))
	if err != nil {
		return err
	}

	switch {
	case opts.Once:
		return runOnce(ctx, out, stack)
	case opts.NoTUI || !isTerminal():
		return runHeadless(ctx, out, stack)
	default:
		return runTUI(ctx, stack)
	}
}

// runOnce performs a single poll cycle and prints the frame.
func runOnce(ctx context.Context, out io.Writer, stack *boardStack) error {
	plain := display.NewPlainPresenter(out, stack.atlas)
	frame, _ := stack.poller(plain, logger.NewEnvLogger("[poll]")).PollOnce(ctx)
	if frame.Err != nil {
		return errors.WrapWithCode(frame.Err, errors.ErrFetch,
			"Poll failed",
			"Run 'statusboard check' to test the API connection.")
	}
	return plain.Err()
}

// runHeadless prints every new frame until interrupted.
func runHeadless(ctx context.Context, out io.Writer, stack *boardStack) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	log := logger.NewEnvLogger("[poll]")
	presenters := poll.Presenters{display.NewPlainPresenter(out, stack.atlas)}
	srv := startServer(ctx, cancel, stack, log)
	if srv != nil {
		presenters = append(presenters, srv.state)
	}

	_ = stack.poller(presenters, log).Run(ctx)
	cancel(nil)
	srv.wait()
	return causeOf(ctx)
}

// runTUI shows the board full screen until the user quits.
func runTUI(ctx context.Context, stack *boardStack) error {
	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var poller *poll.Poller
	model := display.NewModel(stack.atlas,
		display.WithSource(stack.cfg.API.URL),
		display.WithRefresh(func() { poller.Refresh() }),
	)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	log := logger.NewEnvLogger("[poll]")
	presenters := poll.Presenters{display.NewBridge(program)}
	srv := startServer(ctx, cancel, stack, log)
	if srv != nil {
		presenters = append(presenters, srv.state)
	}
	poller = stack.poller(presenters, log)

	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		_ = poller.Run(ctx)
	}()

	_, runErr := program.Run()
	cancel(nil)
	<-pollDone
	srv.wait()

	if err := causeOf(ctx); err != nil {
		return err
	}
	if runErr != nil && !stderrors.Is(runErr, tea.ErrProgramKilled) {
		return errors.WrapWithCode(runErr, errors.ErrRender,
			"Terminal UI failed",
			"Try --no-tui for plain text output.")
	}
	return nil
}

// redirectLogs keeps log lines off the TUI. With debug enabled they go to
// debugLogFile; otherwise they are dropped.
func redirectLogs() (func(), error) {
	if os.Getenv(logger.DebugEnv) == "" {
		stdlog.SetOutput(io.Discard)
		return func() { stdlog.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(debugLogFile, "statusboard")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to open debug log "+debugLogFile,
			"Check the current directory is writable or drop --verbose.")
	}
	return func() {
		f.Close()
		stdlog.SetOutput(os.Stderr)
	}, nil
}

// boardServer is the optional HTTP surface running next to the poller.
type boardServer struct {
	state *server.State
	done  chan error
}

// startServer serves the board when server.listen is set. A listener
// failure cancels ctx with the error as cause.
func startServer(ctx context.Context, cancel context.CancelCauseFunc, stack *boardStack, log logger.Logger) *boardServer {
	listen := stack.cfg.Server.Listen
	if listen == "" {
		return nil
	}

	bs := &boardServer{
		state: server.NewState(stack.atlas),
		done:  make(chan error, 1),
	}
	go func() {
		err := server.ListenAndServe(ctx, listen, server.NewRouter(bs.state), log)
		if err != nil {
			cancel(errors.WrapWithCode(err, errors.ErrConfig,
				"HTTP board failed on "+listen,
				"Check 'server.listen' is a free address like :8080."))
		}
		bs.done <- err
	}()
	return bs
}

func (bs *boardServer) wait() {
	if bs == nil {
		return
	}
	<-bs.done
}

// causeOf returns why ctx ended, or nil when it simply ended (cancel,
// interrupt or deadline).
func causeOf(ctx context.Context) error {
	err := context.Cause(ctx)
	if err == nil || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
