package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/tz"
	"github.com/spf13/cobra"
)

var (
	localtimeZone string
	localtimeYear int
)

var localtimeCmd = &cobra.Command{
	Use:   "localtime [epoch...]",
	Short: "Convert epoch seconds to wall-clock time",
	Long: `Convert epoch seconds to local wall-clock time using the built-in zone
rules, exactly as the board renders 'since' timestamps. With no arguments
the current time is converted.

With --year, the daylight saving transitions for that year are printed.

Examples:
  statusboard localtime 1625140800
  statusboard localtime --zone Australia/Sydney 1625140800 1640995200
  statusboard localtime --year 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLocaltime(cmd.OutOrStdout(), localtimeZone, args, localtimeYear, time.Now())
	},
}

func init() {
	localtimeCmd.Flags().StringVar(&localtimeZone, "zone", tz.DefaultZone, "zone name ("+strings.Join(tz.Names(), ", ")+")")
	localtimeCmd.Flags().IntVar(&localtimeYear, "year", 0, "print daylight saving transitions for this year")
	rootCmd.AddCommand(localtimeCmd)
}

func printLocaltime(w io.Writer, zoneName string, args []string, year int, now time.Time) error {
	zone, err := tz.Lookup(zoneName)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unknown timezone '%s'", zoneName),
			"Use one of: "+strings.Join(tz.Names(), ", "))
	}
	calc := tz.NewCalculator(zone)

	epochs := make([]int64, 0, len(args))
	for _, arg := range args {
		epoch, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' is not an epoch timestamp", arg),
				"Pass whole seconds since 1970-01-01 UTC, e.g. 1625140800")
		}
		epochs = append(epochs, epoch)
	}

	if year != 0 {
		start, end := calc.Transitions(year)
		fmt.Fprintf(w, "%s %d\n", zone.Name, year)
		fmt.Fprintf(w, "  daylight starts  %s\n", formatEpoch(calc, start))
		fmt.Fprintf(w, "  daylight ends    %s\n", formatEpoch(calc, end))
		if len(epochs) == 0 {
			return nil
		}
	}

	if len(epochs) == 0 {
		epochs = append(epochs, now.Unix())
	}
	for _, epoch := range epochs {
		fmt.Fprintf(w, "%d  %s\n", epoch, formatEpoch(calc, epoch))
	}
	return nil
}

func formatEpoch(calc *tz.Calculator, epoch int64) string {
	c := calc.Localtime(epoch)
	return tz.Format(c) + " " + c.Abbrev
}
