package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"brew-formatter/internal/command"
	"brew-formatter/internal/config"
	"brew-formatter/internal/logger"
)

// Version is the release reported by --version.
const Version = "1.0.1"

// Banner is printed by --help and at the start of every scan.
const Banner = `
╭───────────────────────────────────────────────────────────╮
│                                                           │
│                  ▗▄▖  ▗▄▄▖ ▗▄▄▖▗▄▄▄▖ ▗▄▖                  │
│                 ▐▌ ▐▌▐▌   ▐▌   ▐▌   ▐▌ ▐▌                 │
│                 ▐▛▀▜▌▐▌    ▝▀▚▖▐▛▀▀▘▐▌ ▐▌                 │
│                 ▐▌ ▐▌▝▚▄▄▖▗▄▄▞▘▐▙▄▄▖▝▚▄▞▘                 │
│                                                           │
│                 Homebrew code formatter                   │
│                                                           │
╰───────────────────────────────────────────────────────────╯
`

const longHelp = Banner + `
Formats every eligible file under a directory with Prettier, then applies
ESLint and Stylelint fixes where they are enabled. Files that are already
formatted are left alone.

Tools are provisioned with npm under ~/.brew-formatter/tools on first use
(set BREW_FORMATTER_HOME to use another location).`

const examples = `  brew-formatter                   # format the current directory
  brew-formatter /path/to/dir      # format the given directory
  brew-formatter --watch           # format, then keep formatting on change
  brew-formatter --setup           # edit the configuration
  brew-formatter --tools --force   # reinstall the formatting tools`

// options holds the root command's flags.
type options struct {
	setup      bool
	tools      bool
	force      bool
	version    bool
	watch      bool
	debug      bool
	noProgress bool
}

// app carries the process streams and collaborators a run needs. Tests swap
// the runner and paths.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	runner command.Runner
	paths  func() (config.Paths, error)

	// progress reports whether the scan should draw a progress bar.
	progress func() bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		runner: command.NewExecRunner(),
		paths:  config.DefaultPaths,
		progress: func() bool {
			return isatty.IsTerminal(os.Stderr.Fd())
		},
	}
}

// NewRootCmd builds the brew-formatter command tree around a.
func (a *app) NewRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:           "brew-formatter [path]",
		Short:         "Format a source tree with Prettier, ESLint and Stylelint",
		Long:          longHelp,
		Example:       examples,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,

		// PersistentPreRun sets up logging before anything else prints.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.version:
				return a.printVersion()
			case opts.setup:
				return a.runSetup()
			case opts.tools:
				return a.runTools(cmd.Context(), opts.force)
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return a.runFormat(cmd.Context(), root, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.setup, "setup", "s", false, "Configure extensions, ignored directories and tool options")
	flags.BoolVarP(&opts.tools, "tools", "t", false, "Install the formatting tools")
	flags.BoolVar(&opts.force, "force", false, "With --tools, remove and reinstall tools that are already present")
	flags.BoolVarP(&opts.version, "version", "v", false, "Show the program and tool versions")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Keep running and format files as they change")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Do not draw a progress bar")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.MarkFlagsMutuallyExclusive("setup", "tools", "version", "watch")

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	return rootCmd
}

// Run executes the command line args (program name first) against the given
// streams.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	return newApp(stdin, stdout, stderr).run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	logger.SetOutput(a.stdout, a.stderr)

	rootCmd := a.NewRootCmd()
	rootCmd.SetArgs(args[1:])
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}
	return nil
}

// Execute runs the CLI against the process's arguments and terminal,
// exiting with status 1 on failure.
func Execute(ctx context.Context) {
	if err := Run(ctx, os.Args, os.Stdin, color.Output, color.Error); err != nil {
		os.Exit(1)
	}
}

// printf writes plain (uncoloured) output such as the banner and summary.
func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}
