// Package main is the entry point for the tim CLI tool.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bebsworthy/tim/internal/config"
	"github.com/bebsworthy/tim/internal/executor"
	"github.com/bebsworthy/tim/internal/progress"
	"github.com/bebsworthy/tim/internal/runner"
)

// Version is set at build time via ldflags
var Version = "dev"

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// usageLine is printed when no command is given
const usageLine = "Usage: tim <command> [args...]"

// app carries everything a single tim invocation depends on
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	cfg      config.Config
	executor runner.Executor
	// interactive is true when stderr is a terminal; enables progress and colour
	interactive bool

	debug      bool
	format     string
	noProgress bool
}

// newRootCmd creates and returns the root command
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tim [flags] <command> [args...]",
		Short: "Time repeated runs of a command",
		Long: `tim runs a command several times in a row, discarding its output, and
prints the minimum, mean, maximum and standard deviation of the wall-clock
time each run took.

The number of runs is taken from the RUNS environment variable and defaults
to 16. The first run that fails aborts the benchmark with exit status 1.

Flags for tim must come before the command; everything from the command
onwards is passed to it unchanged.`,
		Example: `  # Time 16 runs of a short sleep
  tim sleep 0.1

  # Time 100 runs
  RUNS=100 tim git status

  # Machine-readable output
  tim --format json ls -la`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.benchmark(args)
		},
	}

	cmd.Flags().BoolVar(&a.debug, "debug", false, "Enable debug output on stderr")
	cmd.Flags().StringVar(&a.format, "format", "text", "Report format: text, json or yaml")
	cmd.Flags().BoolVar(&a.noProgress, "no-progress", false, "Do not show run progress on a terminal")

	// Stop parsing at the command so its own flags reach it untouched
	cmd.Flags().SetInterspersed(false)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	return cmd
}

// execute runs tim with the given arguments and returns the process exit code
func (a *app) execute(args []string) int {
	cmd := newRootCmd(a)
	// A nil slice makes cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func main() {
	a := &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		cfg:         config.FromEnvironment(),
		executor:    executor.NewCommandExecutor(),
		interactive: progress.IsTerminal(os.Stderr),
	}
	osExit(a.execute(os.Args[1:]))
}
