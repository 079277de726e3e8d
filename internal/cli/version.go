package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionShort controls whether to show short or full version output
var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of statusboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd, versionShort)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

func printVersion(cmd *cobra.Command, short bool) {
	if short {
		cmd.Println(version)
		return
	}

	cmd.Printf("statusboard %s\n", formatVersion(version))
	cmd.Printf("commit: %s\n", commit)
	cmd.Printf("built: %s\n", date)
	cmd.Printf("go: %s\n", runtime.Version())
	cmd.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
