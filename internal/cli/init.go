package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/icinga"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/tz"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Where to write; defaults to ./.statusboard.yaml
	URL            string
	Username       string
	Password       string
	Timezone       string
	Insecure       bool
	Force          bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use flags and defaults
	SkipCheck      bool // Don't probe the API before saving
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .statusboard.yaml configuration",
	Long: `Create a statusboard configuration file.

Prompts for the monitoring API address and credentials, tests the
connection, and writes .statusboard.yaml in the current directory.

Passwords can be kept out of the file by entering ${VAR}; the value is
read from the environment when the config is loaded.

Examples:
  statusboard init
  statusboard init --force
  statusboard init --non-interactive --url https://icinga:5665 --username board --password '${ICINGA_PASSWORD}'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		if opts.Path == "" && cfgFile != "" {
			opts.Path = config.ExpandTilde(cfgFile)
		}
		return Init(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.URL, "url", "", "monitoring API base URL")
	initCmd.Flags().StringVar(&initOpts.Username, "username", "", "API user")
	initCmd.Flags().StringVar(&initOpts.Password, "password", "", "API password (or ${VAR})")
	initCmd.Flags().StringVar(&initOpts.Timezone, "timezone", "", "timezone for 'since' timestamps")
	initCmd.Flags().BoolVar(&initOpts.Insecure, "insecure", false, "skip TLS certificate verification")
	initCmd.Flags().BoolVarP(&initOpts.Force, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "don't prompt, use flags and defaults")
	initCmd.Flags().BoolVar(&initOpts.SkipCheck, "skip-check", false, "don't test the API before saving")
	rootCmd.AddCommand(initCmd)
}

// Init creates a new configuration file.
func Init(ctx context.Context, out io.Writer, opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = filepath.Join(".", config.ConfigFileName)
	}

	overwrite := opts.Force
	if _, err := os.Stat(path); err == nil && !overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := initialConfig(opts)
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
	}

	if err := config.Validate(resolvedForCheck(cfg)); err != nil {
		return err
	}

	if !opts.SkipCheck {
		if err := probeConfig(ctx, out, cfg); err != nil {
			if opts.NonInteractive || !confirmSaveAnyway(out, err) {
				return err
			}
		}
	}

	if err := config.Write(path, cfg, overwrite); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s Wrote %s\n", ui.SymbolSuccess, path)
	fmt.Fprintln(out, "  Start the board with: statusboard run")
	return nil
}

// initialConfig seeds the defaults with whatever came in on flags.
func initialConfig(opts InitOptions) *config.Config {
	cfg := config.DefaultConfig()
	cfg.API.URL = strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	cfg.API.Username = opts.Username
	cfg.API.Password = opts.Password
	cfg.API.InsecureSkipVerify = opts.Insecure
	if opts.Timezone != "" {
		cfg.Board.Timezone = opts.Timezone
	}
	return cfg
}

// resolvedForCheck returns a copy of cfg with ${VAR} credentials expanded,
// so the probe uses the same values a later load would. The written file
// keeps the references.
func resolvedForCheck(cfg *config.Config) *config.Config {
	c := *cfg
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	c.API.Username = config.Expand(c.API.Username)
	c.API.Password = config.Expand(c.API.Password)
	return &c
}

func promptConfig(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monitoring API URL").
				Description("Base URL of the Icinga 2 API").
				Placeholder("https://icinga.example.com:5665").
				Value(&cfg.API.URL).
				Validate(validateAPIURL),
			huh.NewInput().
				Title("API user").
				Description("An API user allowed to read hosts and services").
				Value(&cfg.API.Username),
			huh.NewInput().
				Title("API password").
				Description("Enter ${VAR} to read it from the environment").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.API.Password),
			huh.NewConfirm().
				Title("Skip TLS certificate verification?").
				Description("Only for self-signed certificates").
				Value(&cfg.API.InsecureSkipVerify),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Timezone").
				Description("Zone used for 'since' timestamps on the board").
				Options(huh.NewOptions(tz.Names()...)...).
				Value(&cfg.Board.Timezone),
		),
	)
	return form.Run()
}

// validateAPIURL checks a URL the same way config validation does and
// returns a one-line error for the prompt.
func validateAPIURL(s string) error {
	cfg := config.DefaultConfig()
	cfg.API.URL = strings.TrimSpace(s)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("%s", errors.Summary(err))
	}
	return nil
}

// probeConfig fetches services once with the new settings.
func probeConfig(ctx context.Context, out io.Writer, cfg *config.Config) error {
	check := resolvedForCheck(cfg)
	client, err := icinga.NewClient(icinga.Config{
		URL:                check.API.URL,
		Username:           check.API.Username,
		Password:           check.API.Password,
		InsecureSkipVerify: check.API.InsecureSkipVerify,
		Timeout:            check.API.Timeout,
	}, logger.NewEnvLogger("[icinga]"))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid monitoring API settings",
			"Check the URL you entered.")
	}

	fmt.Fprintln(out)
	_, err = probeResource(ctx, out, client, icinga.Services, check.API.Timeout)
	return err
}

func confirmSaveAnyway(out io.Writer, cause error) bool {
	fmt.Fprintf(out, "\n%s\n", errors.Summary(cause))

	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can fix the connection later)").
				Value(&saveAnyway),
		),
	)
	if err := form.Run(); err != nil {
		return false
	}
	return saveAnyway
}
