// Package runner executes an invocation a fixed number of times and collects
// the elapsed time of each run.
//
// Runs are strictly sequential. The first run that fails to start or exits
// with a non-zero status stops the loop; no statistics are produced from a
// partial sample.
package runner

import (
	"fmt"
	"time"

	"github.com/bebsworthy/tim/internal/debug"
	"github.com/bebsworthy/tim/internal/executor"
	"github.com/bebsworthy/tim/internal/stats"
)

// Executor runs a command to completion and reports its elapsed time and exit status.
type Executor interface {
	Execute(command string, args []string) executor.Result
}

// Ensure CommandExecutor implements Executor at compile time
var _ Executor = (*executor.CommandExecutor)(nil)

// Observer is notified around every run. Iterations are 1-based.
type Observer interface {
	RunStarted(iteration, total int)
	RunFinished(iteration, total int, result executor.Result)
}

// RunError reports the run that aborted the loop.
type RunError struct {
	// Iteration is the 1-based index of the failed run
	Iteration int
	Runs      int
	Result    executor.Result
}

// Error implements the error interface
func (e *RunError) Error() string {
	return fmt.Sprintf("run %d of %d failed: %v", e.Iteration, e.Runs, e.Result.Err)
}

// Unwrap returns the executor error
func (e *RunError) Unwrap() error {
	return e.Result.Err
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver adds an observer. Observers are called in the order they were added.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// Runner drives the benchmark loop.
type Runner struct {
	executor  Executor
	observers []Observer
}

// New creates a Runner that launches processes through exec.
func New(exec Executor, opts ...Option) *Runner {
	r := &Runner{executor: exec}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes inv exactly runs times and returns the elapsed times in milliseconds,
// in execution order. The first failure is returned as a *RunError and no further
// runs are attempted. A zero run count returns an empty sample.
func (r *Runner) Run(inv Invocation, runs uint16) (stats.Sample, error) {
	if inv.Name() == "" {
		return nil, ErrEmptyInvocation
	}

	total := int(runs)
	name, args := inv.Name(), inv.Args()
	debug.LogCommand(name, args, runs)

	start := time.Now()
	durations := make([]time.Duration, 0, total)
	for i := 1; i <= total; i++ {
		r.notifyStarted(i, total)
		result := r.executor.Execute(name, args)
		r.notifyFinished(i, total, result)
		debug.LogRun(i, total, result.Elapsed, result.ExitCode)

		if !result.Success() {
			err := &RunError{Iteration: i, Runs: total, Result: result}
			debug.LogError(err, "run loop")
			return nil, err
		}
		durations = append(durations, result.Elapsed)
	}
	debug.LogTiming(fmt.Sprintf("%d runs", total), time.Since(start))

	return stats.FromDurations(durations), nil
}

func (r *Runner) notifyStarted(iteration, total int) {
	for _, o := range r.observers {
		o.RunStarted(iteration, total)
	}
}

func (r *Runner) notifyFinished(iteration, total int, result executor.Result) {
	for _, o := range r.observers {
		o.RunFinished(iteration, total, result)
	}
}
