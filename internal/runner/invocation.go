package runner

import (
	"errors"
	"strings"
)

// ErrEmptyInvocation is returned when no command was supplied.
var ErrEmptyInvocation = errors.New("no command given")

// Invocation is the command under test: a program followed by its arguments,
// passed to the child verbatim.
type Invocation struct {
	argv []string
}

// NewInvocation builds an Invocation from command-line arguments. The slice is copied.
func NewInvocation(argv []string) (Invocation, error) {
	if len(argv) == 0 || argv[0] == "" {
		return Invocation{}, ErrEmptyInvocation
	}
	return Invocation{argv: append([]string(nil), argv...)}, nil
}

// Name returns the program to run.
func (i Invocation) Name() string {
	if len(i.argv) == 0 {
		return ""
	}
	return i.argv[0]
}

// Args returns a copy of the arguments following the program name.
func (i Invocation) Args() []string {
	if len(i.argv) < 2 {
		return nil
	}
	return append([]string(nil), i.argv[1:]...)
}

// String joins the program and its arguments with single spaces.
func (i Invocation) String() string {
	return strings.Join(i.argv, " ")
}
