package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/rileyhilliard/statusboard/internal/util"
	"github.com/spf13/cobra"
)

// Persistent flags shared by every command.
var (
	cfgFile string
	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "statusboard",
	Short: "Live board of the worst hosts and services in your monitoring",
	Long: `statusboard polls an Icinga 2 style monitoring API for hosts and
services in a hard problem state, ranks them by severity and recency, and
keeps the worst of them on a fixed-size board.

The board can be shown in the terminal, printed as plain text, or served
over HTTP for wall displays.

Examples:
  statusboard init
  statusboard run
  statusboard run --listen :8080 --no-tui
  statusboard check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+" or ~/"+config.GlobalConfigDir+"/"+config.GlobalConfigFile+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err for humans. Unknown commands get a pointer to help.
func printError(w io.Writer, err error) {
	if isUnknownCommandError(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
		if name := extractUnknownCommand(err); name != "" {
			fmt.Fprintf(w, "\n'%s' is not a statusboard command.\n", name)
			if similar := util.SuggestSimilar(name, commandNames(), 2); len(similar) > 0 {
				fmt.Fprintf(w, "Did you mean '%s'?\n", similar[0])
			}
		}
		fmt.Fprintln(w, "Run 'statusboard --help' for usage.")
		return
	}
	fmt.Fprintln(w, strings.TrimRight(err.Error(), "\n"))
}

func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if !c.Hidden {
			names = append(names, c.Name())
		}
	}
	return names
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "foo" for "statusboard"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
