package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/bebsworthy/tim/internal/debug"
	"github.com/bebsworthy/tim/internal/executor"
	"github.com/bebsworthy/tim/internal/progress"
	"github.com/bebsworthy/tim/internal/reporter"
	"github.com/bebsworthy/tim/internal/runner"
	"github.com/bebsworthy/tim/internal/stats"
)

// errNoRuns is returned when RUNS=0 leaves nothing to summarize
var errNoRuns = errors.New("no runs performed (RUNS=0)")

// errWriteReport wraps failures writing the report to stdout
var errWriteReport = errors.New("failed to write report")

// benchmark runs the invocation described by args and prints the report
func (a *app) benchmark(args []string) error {
	if a.debug {
		debug.SetWriter(a.stderr)
		debug.Enable()
		defer debug.Disable()
	}
	debug.LogSection("Configuration")
	debug.Log("RUNS=%q -> %d (%s)", a.cfg.RawRuns, a.cfg.Runs, a.cfg.RunsSource)
	debug.Log("Format: %s", a.format)

	format, err := reporter.ParseFormat(a.format)
	if err != nil {
		return err
	}

	inv, err := runner.NewInvocation(args)
	if err != nil {
		return err
	}

	var opts []runner.Option
	var line *progress.Line
	if a.interactive && !a.noProgress && !a.debug {
		line = progress.NewLine(a.stderr)
		opts = append(opts, runner.WithObserver(line))
	}

	sample, err := runner.New(a.executor, opts...).Run(inv, a.cfg.Runs)
	if line != nil {
		line.Clear()
	}
	if err != nil {
		return err
	}

	agg, err := stats.Calculate(sample)
	if errors.Is(err, stats.ErrEmptySample) {
		return errNoRuns
	}
	if err != nil {
		return err
	}

	rep := reporter.Report{Command: inv.String(), Runs: a.cfg.Runs, Stats: agg}
	if err := reporter.New(a.stdout, format).Write(rep); err != nil {
		return fmt.Errorf("%w: %v", errWriteReport, err)
	}
	return nil
}

// printError writes the diagnostic for a failed invocation of tim to stderr
func (a *app) printError(err error) {
	if errors.Is(err, runner.ErrEmptyInvocation) {
		_, _ = fmt.Fprintln(a.stderr, usageLine)
		return
	}

	msg := fmt.Sprintf("Error: %v", err)

	var runErr *runner.RunError
	var execErr *executor.ExecError
	if errors.As(err, &runErr) && errors.As(runErr.Result.Err, &execErr) {
		if execErr.Started() {
			msg = fmt.Sprintf("Command failed with status: %s", execErr.Status)
		} else {
			msg = fmt.Sprintf("Failed to execute command: %v", execErr)
		}
	} else if errors.Is(err, errNoRuns) {
		msg = err.Error()
	}

	_, _ = a.failureColor().Fprintln(a.stderr, msg)
}

// failureColor returns red when writing to a terminal that has not opted out via NO_COLOR
func (a *app) failureColor() *color.Color {
	c := color.New(color.FgRed)
	if a.interactive && os.Getenv("NO_COLOR") == "" {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
