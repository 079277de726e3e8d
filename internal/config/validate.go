package config

import (
	"fmt"
	"net/url"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/tz"
	"github.com/rileyhilliard/statusboard/internal/util"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but statusboard only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade statusboard to a newer release.")
	}

	if err := validateAPI(cfg.API); err != nil {
		return err
	}

	if cfg.Poll.Interval < MinPollInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %s is too short", cfg.Poll.Interval),
			fmt.Sprintf("Set 'poll.interval' to at least %s.", MinPollInterval))
	}

	if cfg.Board.Slots < 1 || cfg.Board.Slots > MaxSlots {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Board slots must be between 1 and %d, got %d", MaxSlots, cfg.Board.Slots),
			"Check 'board.slots' in your .statusboard.yaml.")
	}

	if _, err := tz.Lookup(cfg.Board.Timezone); err != nil {
		suggestion := "Use one of: " + util.JoinOrNone(tz.Names())
		if similar := util.SuggestSimilar(cfg.Board.Timezone, tz.Names(), 3); len(similar) > 0 {
			suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unknown timezone '%s'", cfg.Board.Timezone),
			suggestion)
	}

	return nil
}

func validateAPI(api APIConfig) error {
	if api.URL == "" {
		return errors.New(errors.ErrConfig,
			"No monitoring API URL configured",
			"Set 'api.url' in .statusboard.yaml or STATUSBOARD_API_URL, or run 'statusboard init'.")
	}

	u, err := url.Parse(api.URL)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("API URL '%s' is not a valid URL", api.URL),
			"Use a full URL like https://icinga.example.com:5665")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("API URL '%s' must use http or https", api.URL),
			"Use a full URL like https://icinga.example.com:5665")
	}
	if u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("API URL '%s' has no host", api.URL),
			"Use a full URL like https://icinga.example.com:5665")
	}

	if api.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("API timeout must be positive, got %s", api.Timeout),
			"Check 'api.timeout' in your .statusboard.yaml.")
	}

	return nil
}
