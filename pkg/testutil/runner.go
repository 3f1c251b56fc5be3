package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/runner"
)

type fakeResponse struct {
	result runner.Result
	err    error
	fn     func(runner.Command) (runner.Result, error)
}

// FakeRunner returns scripted results keyed by Command.String(). Commands
// without a script behave as if the program is not installed.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []runner.Command
}

// NewFakeRunner creates a runner with no scripted commands.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]fakeResponse)}
}

// On scripts a successful run of cmdline printing stdout.
func (f *FakeRunner) On(cmdline, stdout string) *FakeRunner {
	f.set(cmdline, fakeResponse{result: runner.Result{Stdout: stdout}})
	return f
}

// Fail scripts cmdline to exit with code and print stderr.
func (f *FakeRunner) Fail(cmdline string, code int, stderr string) *FakeRunner {
	f.set(cmdline, fakeResponse{
		result: runner.Result{ExitCode: code, Stderr: stderr},
		err: errors.Newf(errors.ErrCommandExecute, "command failed: %s", cmdline).
			WithDetail("exitCode", code),
	})
	return f
}

// OnFunc scripts cmdline with a callback, for commands with side effects.
func (f *FakeRunner) OnFunc(cmdline string, fn func(runner.Command) (runner.Result, error)) *FakeRunner {
	f.set(cmdline, fakeResponse{fn: fn})
	return f
}

func (f *FakeRunner) set(cmdline string, resp fakeResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = resp
}

// Run implements runner.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.responses[cmd.String()]
	f.mu.Unlock()

	if !ok {
		return runner.Result{ExitCode: -1}, errors.Newf(errors.ErrCommandNotFound, "%s: command not found", cmd.Name)
	}
	if resp.fn != nil {
		return resp.fn(cmd)
	}
	return resp.result, resp.err
}

// Calls returns every command run so far, in order.
func (f *FakeRunner) Calls() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]runner.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns Calls rendered with Command.String.
func (f *FakeRunner) CommandLines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Called reports whether cmdline was run.
func (f *FakeRunner) Called(cmdline string) bool {
	for _, line := range f.CommandLines() {
		if line == cmdline {
			return true
		}
	}
	return false
}

// Last returns the most recent run of cmdline.
func (f *FakeRunner) Last(cmdline string) (runner.Command, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].String() == cmdline {
			return calls[i], true
		}
	}
	return runner.Command{}, false
}

var _ runner.Runner = (*FakeRunner)(nil)
