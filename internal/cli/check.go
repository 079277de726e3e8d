package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/statusboard/internal/display"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/icinga"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/status"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the API connection and preview the board",
	Long: `Fetch problem services and hosts once, report what came back, and
print the board that run would show.

Records the board cannot use (bad state codes, missing timestamps) are
listed so they can be fixed at the source.

Examples:
  statusboard check
  statusboard check --config /etc/statusboard.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		stack, err := newStack(cfg, logger.NewEnvLogger("[icinga]"))
		if err != nil {
			return err
		}
		return checkAPI(cmd.Context(), cmd.OutOrStdout(), stack, time.Now())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkAPI probes both resources and prints the resulting board.
func checkAPI(ctx context.Context, out io.Writer, stack *boardStack, now time.Time) error {
	fmt.Fprintf(out, "Checking %s\n\n", stack.cfg.API.URL)

	fetched := make(map[icinga.Resource][]icinga.Object, 2)
	for _, r := range []icinga.Resource{icinga.Services, icinga.Hosts} {
		objects, err := probeResource(ctx, out, stack.client, r, stack.cfg.API.Timeout)
		if err != nil {
			return err
		}
		fetched[r] = objects
	}

	items, skipped := status.Normalize(fetched[icinga.Hosts], fetched[icinga.Services])
	if len(skipped) > 0 {
		fmt.Fprintf(out, "\n%s %s skipped:\n", ui.SymbolWarning, plural(len(skipped), "record"))
		for _, err := range skipped {
			fmt.Fprintf(out, "  %s\n", errors.Summary(err))
		}
	}

	frame := stack.builder.Build(status.Rank(items), now)
	fmt.Fprintln(out)
	return display.WritePlain(out, frame, stack.atlas)
}
