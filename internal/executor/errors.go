// Package executor runs a single invocation of an external command and times it.
package executor

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Error types for command execution
var (
	// ErrCommandNotFound indicates the command was not found in PATH
	ErrCommandNotFound = errors.New("command not found")

	// ErrPermissionDenied indicates the command cannot be executed due to permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNonZeroExit indicates the command ran but did not exit cleanly
	ErrNonZeroExit = errors.New("non-zero exit status")
)

// ErrorType represents the type of execution error
type ErrorType int

const (
	// ErrorTypeUnknown indicates the process could not be started for an unrecognized reason
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeCommandNotFound indicates the command was not found
	ErrorTypeCommandNotFound
	// ErrorTypePermissionDenied indicates permission was denied
	ErrorTypePermissionDenied
	// ErrorTypeNonZeroExit indicates the process exited with a non-zero code or was killed by a signal
	ErrorTypeNonZeroExit
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeCommandNotFound:
		return "command-not-found"
	case ErrorTypePermissionDenied:
		return "permission-denied"
	case ErrorTypeNonZeroExit:
		return "non-zero-exit"
	default:
		return "unknown"
	}
}

// ExecError represents a failed invocation
type ExecError struct {
	Type    ErrorType
	Command string
	Args    []string
	// ExitCode is the child's exit code, or -1 if it never started or died by signal
	ExitCode int
	// Status is the wait status as reported by the OS, e.g. "exit status 3" or "signal: killed"
	Status string
	Err    error
}

// Error implements the error interface
func (e *ExecError) Error() string {
	cmd := e.Command
	if len(e.Args) > 0 {
		cmd = fmt.Sprintf("%s %s", e.Command, strings.Join(e.Args, " "))
	}

	switch e.Type {
	case ErrorTypeCommandNotFound:
		return fmt.Sprintf("command not found: %s", e.Command)
	case ErrorTypePermissionDenied:
		return fmt.Sprintf("permission denied: %s", cmd)
	case ErrorTypeNonZeroExit:
		return fmt.Sprintf("%s: %s", cmd, e.Status)
	default:
		return fmt.Sprintf("failed to start %s: %v", cmd, e.Err)
	}
}

// Unwrap returns the underlying error
func (e *ExecError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ExecError) Is(target error) bool {
	switch target {
	case ErrCommandNotFound:
		return e.Type == ErrorTypeCommandNotFound
	case ErrPermissionDenied:
		return e.Type == ErrorTypePermissionDenied
	case ErrNonZeroExit:
		return e.Type == ErrorTypeNonZeroExit
	}
	return false
}

// Started reports whether the child process was actually launched.
func (e *ExecError) Started() bool {
	return e.Type == ErrorTypeNonZeroExit
}

// ClassifyError analyzes an error returned by Start or Wait and returns a typed ExecError
func ClassifyError(err error, command string, args []string) *ExecError {
	if err == nil {
		return nil
	}

	execErr := &ExecError{
		Type:     ErrorTypeUnknown,
		Command:  command,
		Args:     args,
		ExitCode: -1,
		Err:      err,
	}

	// The process ran; it either exited non-zero or was signalled
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		execErr.Type = ErrorTypeNonZeroExit
		execErr.ExitCode = exitError.ExitCode()
		execErr.Status = exitError.String()
		return execErr
	}

	if errType := classifyExecError(err); errType != ErrorTypeUnknown {
		execErr.Type = errType
		return execErr
	}

	execErr.Type = classifyByErrorMessage(err.Error())
	return execErr
}

// classifyExecError classifies exec.Error types
func classifyExecError(err error) ErrorType {
	var execError *exec.Error
	if !errors.As(err, &execError) {
		return ErrorTypeUnknown
	}

	if errors.Is(execError.Err, exec.ErrNotFound) {
		return ErrorTypeCommandNotFound
	}

	return classifyByErrorMessage(execError.Error())
}

// classifyByErrorMessage classifies start errors by their message content
func classifyByErrorMessage(errorMessage string) ErrorType {
	errStr := strings.ToLower(errorMessage)

	switch {
	case strings.Contains(errStr, "permission denied"),
		strings.Contains(errStr, "operation not permitted"):
		return ErrorTypePermissionDenied
	case strings.Contains(errStr, "executable file not found"),
		strings.Contains(errStr, "no such file or directory"),
		strings.Contains(errStr, "not found"):
		return ErrorTypeCommandNotFound
	default:
		return ErrorTypeUnknown
	}
}
