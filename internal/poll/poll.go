// Package poll runs the fetch, rank and render cycle that keeps the board
// current.
//
// Each cycle fetches the service and host problem lists. If either fetch
// fails the whole cycle is an error: the board keeps its previous slots and
// the status row shows the error. If both bodies are byte-identical to the
// previous successful cycle nothing is re-rendered. Otherwise the bodies are
// decoded, normalized, ranked and rendered into a new frame, which is handed
// to every presenter.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/icinga"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/status"
)

// DefaultInterval is the time between poll cycles.
const DefaultInterval = 30 * time.Second

// DefaultFetchTimeout bounds a single API request.
const DefaultFetchTimeout = 10 * time.Second

// Source fetches one resource collection from the monitoring API.
type Source interface {
	Fetch(ctx context.Context, r icinga.Resource) (icinga.Response, error)
}

// Presenter receives complete frames.
type Presenter interface {
	Present(board.Frame)
}

// PresenterFunc adapts a function to a Presenter.
type PresenterFunc func(board.Frame)

// Present calls f(frame).
func (f PresenterFunc) Present(frame board.Frame) { f(frame) }

// Presenters fans a frame out to several presenters in order.
type Presenters []Presenter

// Present hands frame to every presenter.
func (ps Presenters) Present(frame board.Frame) {
	for _, p := range ps {
		p.Present(frame)
	}
}

// Options configures a Poller.
type Options struct {
	Interval     time.Duration
	FetchTimeout time.Duration
	Logger       logger.Logger
	// Now is the clock used to stamp frames. Defaults to time.Now.
	Now func() time.Time
}

// Poller owns the poll cycle state. PollOnce is not safe for concurrent
// use; Run serializes cycles on a single goroutine.
type Poller struct {
	src       Source
	builder   *board.Builder
	presenter Presenter
	interval  time.Duration
	timeout   time.Duration
	log       logger.Logger
	now       func() time.Time
	refresh   chan struct{}

	// Raw bodies of the last successful cycle.
	services string
	hosts    string
	cached   bool

	last board.Frame
}

// New creates a poller that renders with builder and presents to presenter.
func New(src Source, builder *board.Builder, presenter Presenter, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if presenter == nil {
		presenter = Presenters(nil)
	}
	return &Poller{
		src:       src,
		builder:   builder,
		presenter: presenter,
		interval:  opts.Interval,
		timeout:   opts.FetchTimeout,
		log:       opts.Logger,
		now:       opts.Now,
		refresh:   make(chan struct{}, 1),
	}
}

// Last returns the most recently presented frame.
func (p *Poller) Last() board.Frame {
	return p.last
}

// Refresh requests an early cycle. Requests made while one is already
// pending are merged.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// PollOnce runs a single cycle. It returns the new frame and true when
// the board was re-rendered, or the previous frame and false when the
// monitoring data did not change. The frame is also handed to the
// presenter when it was re-rendered.
func (p *Poller) PollOnce(ctx context.Context) (board.Frame, bool) {
	// A started cycle always finishes; only the fetch timeout bounds it.
	ctx = context.WithoutCancel(ctx)

	services, err := p.fetch(ctx, icinga.Services)
	if err != nil {
		return p.fail(err), true
	}
	hosts, err := p.fetch(ctx, icinga.Hosts)
	if err != nil {
		return p.fail(err), true
	}

	if p.cached && services == p.services && hosts == p.hosts {
		p.log.Debug("no change since last cycle")
		return p.last, false
	}

	frame, err := p.render(services, hosts)
	if err != nil {
		return p.fail(err), true
	}

	p.services, p.hosts, p.cached = services, hosts, true
	p.present(frame)
	return frame, true
}

// Run polls immediately, then once per interval and whenever Refresh is
// called, until ctx is done. Cancellation is observed between cycles.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.PollOnce(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-p.refresh:
			p.log.Debug("refresh requested")
			ticker.Reset(p.interval)
		}
	}
}

func (p *Poller) fetch(parent context.Context, r icinga.Resource) (string, error) {
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	resp, err := p.src.Fetch(ctx, r)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrFetch, "monitoring API unreachable",
			"Check api.url and that the API is listening")
	}
	if err := resp.Err(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrFetch, "monitoring API error",
			fmt.Sprintf("Check api.username and api.password can read %s", r))
	}
	return resp.Body, nil
}

func (p *Poller) render(servicesBody, hostsBody string) (board.Frame, error) {
	services, err := icinga.Decode(servicesBody)
	if err != nil {
		return board.Frame{}, errors.WrapWithCode(err, errors.ErrFetch, "decode services", "")
	}
	hosts, err := icinga.Decode(hostsBody)
	if err != nil {
		return board.Frame{}, errors.WrapWithCode(err, errors.ErrFetch, "decode hosts", "")
	}

	items, recordErrs := status.Normalize(hosts, services)
	for _, e := range recordErrs {
		p.log.Warn("skipping record: %s", errors.Summary(e))
	}

	ranked := status.Rank(items)
	frame := p.builder.Build(ranked, p.now())
	p.log.Debug("rendered %d of %d items", frame.VisibleCount(), frame.Total)
	return frame, nil
}

// fail builds and presents the error frame and drops the body cache so the
// next successful cycle re-renders.
func (p *Poller) fail(err error) board.Frame {
	p.log.Error("poll cycle failed: %s", errors.Summary(err))
	p.cached = false
	p.services, p.hosts = "", ""

	frame := p.builder.ErrorFrame(p.last, err, p.now())
	p.present(frame)
	return frame
}

func (p *Poller) present(frame board.Frame) {
	p.last = frame
	p.presenter.Present(frame)
}
