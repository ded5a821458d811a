package executor

import (
	"fmt"
	"os/exec"
	"time"
)

// Result is the outcome of one invocation
type Result struct {
	// Wall-clock time from just before launch to just after the process was reaped
	Elapsed time.Duration
	// Exit code of the command, -1 if it never started or was killed by a signal
	ExitCode int
	// Err is non-nil when the invocation did not succeed; always an *ExecError
	Err error
}

// Success reports whether the command started and exited with status zero.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CommandExecutor runs external commands with no stdio attached.
type CommandExecutor struct {
	// now is swapped in tests to make elapsed times deterministic
	now func() time.Time
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{now: time.Now}
}

// Execute runs the command to completion and reports its elapsed time and exit status.
// The child's stdin, stdout and stderr are connected to the null device and its
// environment is inherited. Execute does not return until the child has been reaped.
func (e *CommandExecutor) Execute(command string, args []string) Result {
	if command == "" {
		return Result{
			ExitCode: -1,
			Err:      ClassifyError(fmt.Errorf("command cannot be empty"), command, args),
		}
	}

	// Stdin, Stdout and Stderr are left nil, which os/exec maps to os.DevNull
	cmd := exec.Command(command, args...)

	start := e.now()
	if err := cmd.Start(); err != nil {
		return Result{
			Elapsed:  e.now().Sub(start),
			ExitCode: -1,
			Err:      ClassifyError(err, command, args),
		}
	}
	waitErr := cmd.Wait()
	elapsed := e.now().Sub(start)

	if waitErr != nil {
		execErr := ClassifyError(waitErr, command, args)
		return Result{
			Elapsed:  elapsed,
			ExitCode: execErr.ExitCode,
			Err:      execErr,
		}
	}

	return Result{
		Elapsed:  elapsed,
		ExitCode: cmd.ProcessState.ExitCode(),
	}
}
