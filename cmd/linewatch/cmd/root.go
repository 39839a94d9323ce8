package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/linewatch/linewatch/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "linewatch",
		Usage:   "A CI style checker for line width and import blocks",
		Version: version.Version(),
		Description: `linewatch enforces two textual style rules across a source tree:
a per-file-pattern maximum line width, and a prohibition on multi-line
bracketed use blocks in Rust sources.

In CI it can restrict checking to the lines touched by the current
revision, so pre-existing violations elsewhere do not fail the build.

Examples:
  linewatch check .
  linewatch check --rules "CHANGELOG.md:40;*.md:50;*.rs:60;DEFAULT=70" .
  linewatch check --changed-only --event pull_request --base-ref main .`,
		Commands: []*cli.Command{
			checkCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
