package testutil

import (
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/bebsworthy/tim/internal/executor"
)

// Call records one Execute call.
type Call struct {
	Command string
	Args    []string
}

// FakeExecutor returns scripted results instead of launching processes.
type FakeExecutor struct {
	mu       sync.Mutex
	queue    []executor.Result
	fallback *executor.Result
	calls    []Call
}

// NewFakeExecutor creates an empty FakeExecutor.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

// Then queues a result for the next unscripted call.
func (f *FakeExecutor) Then(results ...executor.Result) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, results...)
	return f
}

// Always sets the result returned once the queue is exhausted.
func (f *FakeExecutor) Always(result executor.Result) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = &result
	return f
}

// Execute implements runner.Executor.
func (f *FakeExecutor) Execute(command string, args []string) executor.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Command: command, Args: append([]string(nil), args...)})

	if len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		return next
	}
	if f.fallback != nil {
		return *f.fallback
	}
	return Succeeded(time.Millisecond)
}

// Calls returns a copy of the recorded calls.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns the number of Execute calls so far.
func (f *FakeExecutor) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Succeeded returns a successful result with the given elapsed time.
func Succeeded(elapsed time.Duration) executor.Result {
	return executor.Result{Elapsed: elapsed}
}

// ExitedWith returns a result for a process that exited with code.
func ExitedWith(code int, elapsed time.Duration) executor.Result {
	return executor.Result{
		Elapsed:  elapsed,
		ExitCode: code,
		Err: &executor.ExecError{
			Type:     executor.ErrorTypeNonZeroExit,
			Command:  "fake",
			ExitCode: code,
			Status:   fmt.Sprintf("exit status %d", code),
		},
	}
}

// NotFound returns a result for a command that could not be launched.
func NotFound(command string) executor.Result {
	return executor.Result{
		ExitCode: -1,
		Err: executor.ClassifyError(
			&exec.Error{Name: command, Err: exec.ErrNotFound}, command, nil),
	}
}
