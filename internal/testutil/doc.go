// Package testutil provides test doubles for the tim test suite.
//
// The package includes two components:
//
// FakeExecutor: a scripted stand-in for the process executor
//   - Queue results with Then(), or set a fallback with Always()
//   - Calls are recorded so tests can assert how many processes were launched
//   - The zero value succeeds every call with a 1ms elapsed time
//
// Result helpers: shorthand for building executor.Result values
//   - Succeeded() for a clean exit after a given duration
//   - ExitedWith() for a non-zero exit code
//   - NotFound() for a command that could not be launched
//
// Example usage:
//
//	fake := testutil.NewFakeExecutor().
//		Then(testutil.Succeeded(10 * time.Millisecond)).
//		Then(testutil.ExitedWith(2, 5*time.Millisecond))
//
//	_, err := runner.New(fake).Run(inv, 5)
//	// fake.CallCount() == 2
package testutil
