// Package cli implements the statusboard command tree on cobra.
//
// The root command carries the persistent --config, --no-color and
// --verbose flags. Subcommands:
//
//	run         poll the monitoring API and show the board
//	init        write a .statusboard.yaml interactively or from flags
//	check       probe the API once and report what the board would show
//	localtime   convert epoch seconds with the built-in zone rules
//	version     print build information
//	completion  generate shell completion scripts
package cli
