package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/icinga"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/poll"
	"github.com/rileyhilliard/statusboard/internal/tiles"
	"github.com/rileyhilliard/statusboard/internal/tz"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/rileyhilliard/statusboard/internal/util"
)

// boardStack holds everything a poll cycle needs, built from one config.
type boardStack struct {
	cfg     *config.Config
	atlas   *tiles.Atlas
	builder *board.Builder
	client  *icinga.Client
}

// loadConfig resolves the config file, applies command-line overrides and
// validates the result.
func loadConfig(override func(*config.Config)) (*config.Config, error) {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Default().Debug("using config %s", path)
	}
	if override != nil {
		override(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newStack(cfg *config.Config, log logger.Logger) (*boardStack, error) {
	zone, err := tz.Lookup(cfg.Board.Timezone)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unknown timezone '%s'", cfg.Board.Timezone),
			"Check 'board.timezone' in your .statusboard.yaml.")
	}

	atlas, renderer, err := tiles.NewDefault()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRender,
			"Failed to build the glyph atlas",
			"This shouldn't happen - please report this bug")
	}

	client, err := icinga.NewClient(icinga.Config{
		URL:                cfg.API.URL,
		Username:           cfg.API.Username,
		Password:           cfg.API.Password,
		InsecureSkipVerify: cfg.API.InsecureSkipVerify,
		Timeout:            cfg.API.Timeout,
	}, log)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid monitoring API settings",
			"Check the 'api' section of your .statusboard.yaml.")
	}

	return &boardStack{
		cfg:     cfg,
		atlas:   atlas,
		builder: board.NewBuilder(cfg.Board.Slots, renderer, tz.NewCalculator(zone)),
		client:  client,
	}, nil
}

func (s *boardStack) poller(presenter poll.Presenter, log logger.Logger) *poll.Poller {
	return poll.New(s.client, s.builder, presenter, poll.Options{
		Interval:     s.cfg.Poll.Interval,
		FetchTimeout: s.cfg.API.Timeout,
		Logger:       log,
	})
}

// probeResource fetches and decodes one resource behind a spinner.
func probeResource(ctx context.Context, out io.Writer, src poll.Source, r icinga.Resource, timeout time.Duration) ([]icinga.Object, error) {
	spinner := ui.NewSpinner("Fetching " + string(r))
	spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
	spinner.Start()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := src.Fetch(ctx, r)
	if err != nil {
		spinner.Fail()
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Monitoring API unreachable",
			"Check 'api.url' and that the API is listening.")
	}
	if !resp.OK() {
		spinner.Fail(fmt.Sprintf("HTTP %d", resp.StatusCode))
		return nil, errors.WrapWithCode(resp.Err(), errors.ErrFetch,
			"Monitoring API error",
			fmt.Sprintf("Check 'api.username' and 'api.password' can read %s.", r))
	}

	objects, err := icinga.Decode(resp.Body)
	if err != nil {
		spinner.Fail("unreadable response")
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Could not decode %s", r),
			"Check that 'api.url' points at an Icinga 2 API.")
	}

	spinner.Success(plural(len(objects), "problem"))
	return objects, nil
}

func plural(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, util.Pluralize(n, noun, noun+"s"))
}
