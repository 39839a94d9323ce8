package cmd

import (
	stdcontext "context"
	"fmt"
	"os"

	"github.com/gkampitakis/ciinfo"
	"github.com/urfave/cli/v3"

	"github.com/linewatch/linewatch/internal/config"
	"github.com/linewatch/linewatch/internal/gitscope"
	"github.com/linewatch/linewatch/internal/linter"
	"github.com/linewatch/linewatch/internal/processor"
	"github.com/linewatch/linewatch/internal/reporter"
	"github.com/linewatch/linewatch/internal/version"
)

// Exit codes
const (
	ExitSuccess     = 0 // No violations
	ExitViolations  = 1 // Violations found
	ExitConfigError = 2 // Config or usage error
	ExitNoRoot      = 3 // Scan root not walkable
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check a source tree for style violations",
		ArgsUsage: "[ROOT]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Width rules: \"pattern:width;...;DEFAULT=width\"",
				Sources: cli.EnvVars("LINEWATCH_WIDTH_RULES"),
			},
			&cli.BoolFlag{
				Name:  "no-imports-check",
				Usage: "Disable the multi-line import block check",
			},
			&cli.BoolFlag{
				Name:    "changed-only",
				Usage:   "Check only lines changed in the current revision",
				Sources: cli.EnvVars("LINEWATCH_SCOPE_CHANGED_ONLY"),
			},
			&cli.StringFlag{
				Name:    "event",
				Usage:   "CI event type: pull_request, push (default: detect)",
				Sources: cli.EnvVars("LINEWATCH_SCOPE_EVENT", "GITHUB_EVENT_NAME"),
			},
			&cli.StringFlag{
				Name:    "rev",
				Usage:   "Revision under check (default: HEAD)",
				Sources: cli.EnvVars("LINEWATCH_SCOPE_REV"),
			},
			&cli.StringFlag{
				Name:    "base-ref",
				Usage:   "Pull-request base branch reference",
				Sources: cli.EnvVars("LINEWATCH_SCOPE_BASE_REF", "GITHUB_BASE_REF"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif, github-actions",
				Sources: cli.EnvVars("LINEWATCH_FORMAT", "LINEWATCH_OUTPUT_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or file path",
				Sources: cli.EnvVars("LINEWATCH_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.BoolFlag{
				Name:  "hide-source",
				Usage: "Hide offending source text in text output",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (can be repeated)",
				Sources: cli.EnvVars("LINEWATCH_EXCLUDE"),
			},
		},
		Action: runCheck,
	}
}

func runCheck(ctx stdcontext.Context, cmd *cli.Command) error {
	root := cmd.Args().First()
	if root == "" {
		root = "."
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	format, err := reporter.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	changes := resolveScope(ctx, cfg, root)

	engine := linter.NewEngine(cfg, changes)
	result, err := engine.Run(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot walk %s: %v\n", root, err)
		return cli.Exit("", ExitNoRoot)
	}

	violations := processor.DefaultChain().Process(result.Violations())

	out, closeOut, err := openOutput(cfg.Output.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	defer closeOut()

	textOpts := reporter.DefaultTextOptions()
	textOpts.ShowSource = !cmd.Bool("hide-source")
	if cfg.Output.NoColor {
		noColor := false
		textOpts.Color = &noColor
	}

	rep, err := reporter.New(format, out, textOpts, version.Version())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	metadata := reporter.ReportMetadata{
		FilesScanned: result.FilesScanned,
		Scoped:       changes != nil,
		Summaries:    []string{result.Width.Summary, result.Imports.Summary},
	}
	if err := rep.Report(violations, result.Sources, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	if !result.Success() {
		return cli.Exit("", ExitViolations)
	}
	return nil
}

// loadConfig resolves the effective configuration: file and environment via
// the config package, then explicit flag overrides on top.
func loadConfig(cmd *cli.Command, root string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load(root)
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("rules") {
		cfg.Width.Rules = cmd.String("rules")
	}
	if cmd.IsSet("no-imports-check") {
		cfg.Imports.Enabled = !cmd.Bool("no-imports-check")
	}
	if cmd.IsSet("changed-only") {
		cfg.Scope.ChangedOnly = cmd.Bool("changed-only")
	}
	if cmd.IsSet("event") {
		cfg.Scope.Event = cmd.String("event")
	}
	if cmd.IsSet("rev") {
		cfg.Scope.Rev = cmd.String("rev")
	}
	if cmd.IsSet("base-ref") {
		cfg.Scope.BaseRef = cmd.String("base-ref")
	}
	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
	}
	if cmd.IsSet("output") {
		cfg.Output.Path = cmd.String("output")
	}
	if cmd.IsSet("no-color") {
		cfg.Output.NoColor = cmd.Bool("no-color")
	}
	if cmd.IsSet("exclude") {
		cfg.Walk.Exclude = cmd.StringSlice("exclude")
	}

	return cfg, nil
}

// resolveScope builds the change scope when scoping is requested.
// Returns nil (whole-tree scan) when scoping is off, the tree is not a git
// repository, or every diff strategy fails.
func resolveScope(ctx stdcontext.Context, cfg *config.Config, root string) gitscope.ChangeMap {
	if !cfg.Scope.ChangedOnly {
		return nil
	}

	event := cfg.Scope.Event
	if event == "" && ciinfo.IsCI {
		// No explicit event: fall back to CI detection.
		if ciinfo.IsPr {
			event = string(gitscope.EventPullRequest)
		} else {
			event = string(gitscope.EventPush)
		}
	}

	client := gitscope.NewClient(root)
	if !client.IsRepo(ctx) {
		fmt.Fprintf(os.Stderr, "Warning: %s is not a git repository; checking whole tree\n", root)
		return nil
	}

	resolver := gitscope.NewResolver(client)
	return resolver.Resolve(ctx, gitscope.ParseEventType(event), cfg.Scope.Rev, cfg.Scope.BaseRef)
}

// openOutput resolves the output destination.
func openOutput(path string) (*os.File, func(), error) {
	switch path {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open output file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
}
