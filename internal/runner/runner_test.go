package runner

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebsworthy/tim/internal/executor"
	"github.com/bebsworthy/tim/internal/stats"
	"github.com/bebsworthy/tim/internal/testutil"
)

func mustInvocation(t *testing.T, argv ...string) Invocation {
	t.Helper()
	inv, err := NewInvocation(argv)
	require.NoError(t, err)
	return inv
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) RunStarted(iteration, total int) {
	o.events = append(o.events, "start")
}

func (o *recordingObserver) RunFinished(iteration, total int, result executor.Result) {
	if result.Success() {
		o.events = append(o.events, "ok")
	} else {
		o.events = append(o.events, "fail")
	}
}

func TestRun_CollectsEverySample(t *testing.T) {
	tests := []struct {
		name string
		runs uint16
	}{
		{name: "single run", runs: 1},
		{name: "default run count", runs: 16},
		{name: "many runs", runs: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeExecutor()

			sample, err := New(fake).Run(mustInvocation(t, "true"), tt.runs)

			require.NoError(t, err)
			assert.Len(t, sample, int(tt.runs))
			assert.Equal(t, int(tt.runs), fake.CallCount())
		})
	}
}

func TestRun_PreservesExecutionOrder(t *testing.T) {
	fake := testutil.NewFakeExecutor().Then(
		testutil.Succeeded(30*time.Millisecond),
		testutil.Succeeded(10*time.Millisecond),
		testutil.Succeeded(1500*time.Microsecond),
	)

	sample, err := New(fake).Run(mustInvocation(t, "true"), 3)

	require.NoError(t, err)
	require.Len(t, sample, 3)
	assert.InDelta(t, 30.0, sample[0], 1e-9)
	assert.InDelta(t, 10.0, sample[1], 1e-9)
	assert.InDelta(t, 1.5, sample[2], 1e-9)
}

func TestRun_PassesArgumentsVerbatim(t *testing.T) {
	fake := testutil.NewFakeExecutor()
	inv := mustInvocation(t, "echo", "hello", "--flag", "two words")

	_, err := New(fake).Run(inv, 2)

	require.NoError(t, err)
	for _, call := range fake.Calls() {
		assert.Equal(t, "echo", call.Command)
		assert.Equal(t, []string{"hello", "--flag", "two words"}, call.Args)
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		name       string
		failAt     int
		runs       uint16
		failure    executor.Result
		expectedIs error
	}{
		{
			name:       "first run exits non-zero",
			failAt:     1,
			runs:       16,
			failure:    testutil.ExitedWith(1, time.Millisecond),
			expectedIs: executor.ErrNonZeroExit,
		},
		{
			name:       "middle run exits non-zero",
			failAt:     4,
			runs:       10,
			failure:    testutil.ExitedWith(2, time.Millisecond),
			expectedIs: executor.ErrNonZeroExit,
		},
		{
			name:       "last run exits non-zero",
			failAt:     5,
			runs:       5,
			failure:    testutil.ExitedWith(7, time.Millisecond),
			expectedIs: executor.ErrNonZeroExit,
		},
		{
			name:       "launch failure",
			failAt:     1,
			runs:       3,
			failure:    testutil.NotFound("missing"),
			expectedIs: executor.ErrCommandNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeExecutor()
			for i := 1; i < tt.failAt; i++ {
				fake.Then(testutil.Succeeded(time.Millisecond))
			}
			fake.Then(tt.failure)

			sample, err := New(fake).Run(mustInvocation(t, "cmd"), tt.runs)

			require.Error(t, err)
			assert.Nil(t, sample, "no partial sample is returned")
			assert.Equal(t, tt.failAt, fake.CallCount(), "no runs after the failure")
			assert.True(t, errors.Is(err, tt.expectedIs))

			var runErr *RunError
			require.True(t, errors.As(err, &runErr))
			assert.Equal(t, tt.failAt, runErr.Iteration)
			assert.Equal(t, int(tt.runs), runErr.Runs)
			assert.Equal(t, tt.failure.ExitCode, runErr.Result.ExitCode)
		})
	}
}

func TestRun_ZeroRuns(t *testing.T) {
	fake := testutil.NewFakeExecutor()

	sample, err := New(fake).Run(mustInvocation(t, "true"), 0)

	require.NoError(t, err)
	assert.Empty(t, sample)
	assert.Zero(t, fake.CallCount(), "nothing is spawned for zero runs")

	_, err = stats.Calculate(sample)
	assert.ErrorIs(t, err, stats.ErrEmptySample)
}

func TestRun_EmptyInvocation(t *testing.T) {
	fake := testutil.NewFakeExecutor()

	_, err := New(fake).Run(Invocation{}, 3)

	assert.ErrorIs(t, err, ErrEmptyInvocation)
	assert.Zero(t, fake.CallCount())
}

func TestRun_NotifiesObservers(t *testing.T) {
	fake := testutil.NewFakeExecutor().Then(
		testutil.Succeeded(time.Millisecond),
		testutil.ExitedWith(1, time.Millisecond),
	)
	first, second := &recordingObserver{}, &recordingObserver{}

	_, err := New(fake, WithObserver(first), WithObserver(nil), WithObserver(second)).
		Run(mustInvocation(t, "cmd"), 4)

	require.Error(t, err)
	expected := []string{"start", "ok", "start", "fail"}
	assert.Equal(t, expected, first.events)
	assert.Equal(t, expected, second.events)
}

func TestRunError_Message(t *testing.T) {
	err := &RunError{Iteration: 2, Runs: 5, Result: testutil.ExitedWith(3, 0)}

	assert.Equal(t, "run 2 of 5 failed: fake: exit status 3", err.Error())
}

func TestRun_RealProcesses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on POSIX utilities")
	}
	if testing.Short() {
		t.Skip("skipping process-spawning test in short mode")
	}

	r := New(executor.NewCommandExecutor())

	sample, err := r.Run(mustInvocation(t, "true"), 3)
	require.NoError(t, err)
	assert.Len(t, sample, 3)
	for _, ms := range sample {
		assert.GreaterOrEqual(t, ms, 0.0)
	}

	_, err = r.Run(mustInvocation(t, "false"), 3)
	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, 1, runErr.Iteration)
	assert.Equal(t, 1, runErr.Result.ExitCode)
}
