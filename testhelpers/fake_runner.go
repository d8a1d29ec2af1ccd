package testhelpers

import (
	"context"
	"strings"
	"sync"

	"gitdesk.dev/gitdesk/internal/git"
)

// FakeResponse is the canned outcome for one command line
type FakeResponse struct {
	OK     bool
	Output string
}

// FakeRunner implements git.Runner without starting processes. Responses
// are matched on the argument list joined by spaces; unmatched commands
// succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     []git.Command
	// OnRun, when set, is called before a response is produced
	OnRun func(cmd git.Command)
}

// NewFakeRunner creates an empty FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]FakeResponse)}
}

// On registers the response for the given arguments
func (f *FakeRunner) On(args string, resp FakeResponse) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[args] = resp
	return f
}

// Succeed registers a successful response with the given stdout
func (f *FakeRunner) Succeed(args, stdout string) *FakeRunner {
	return f.On(args, FakeResponse{OK: true, Output: stdout})
}

// Fail registers a failed response with the given stderr
func (f *FakeRunner) Fail(args, stderr string) *FakeRunner {
	return f.On(args, FakeResponse{OK: false, Output: stderr})
}

// Run implements git.Runner
func (f *FakeRunner) Run(_ context.Context, cmd git.Command) (git.Result, error) {
	if f.OnRun != nil {
		f.OnRun(cmd)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)

	resp, ok := f.responses[strings.Join(cmd.Args, " ")]
	if !ok {
		resp = FakeResponse{OK: true}
	}
	res := git.Result{Command: cmd, OK: resp.OK, Output: resp.Output}
	if !resp.OK {
		res.ExitCode = 1
	}
	return res, nil
}

// Calls returns a copy of the recorded commands
func (f *FakeRunner) Calls() []git.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]git.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallLines returns the recorded argument lists joined by spaces
func (f *FakeRunner) CallLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = strings.Join(c.Args, " ")
	}
	return lines
}

// CountPrefix returns how many recorded commands start with the given arguments
func (f *FakeRunner) CountPrefix(prefix string) int {
	n := 0
	for _, line := range f.CallLines() {
		if line == prefix || strings.HasPrefix(line, prefix+" ") {
			n++
		}
	}
	return n
}

// Reset clears the recorded commands, keeping the responses
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
