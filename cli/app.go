// Package cli wires the ecoord command-line surface: stats inspection
// and the two format-conversion subcommands.
package cli

import (
	"github.com/urfave/cli/v2"
)

// NewApp builds the ecoord CLI application.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "ecoord",
		Usage:   "inspect and convert ecoord transform-tree documents",
		Version: version,
		Commands: []*cli.Command{
			statsCommand,
			convertFromKittiCommand,
			convertFromTabularCommand,
		},
	}
}
