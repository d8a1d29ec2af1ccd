package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	gderrors "gitdesk.dev/gitdesk/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// DefaultBinary is the executable used when none is configured
const DefaultBinary = "git"

// Command is a single external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line as shown in the output log.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the outcome of one invocation. Output holds stdout on success
// and stderr on failure.
type Result struct {
	Command  Command
	OK       bool
	Output   string
	ExitCode int
	Duration time.Duration
}

// Err converts a failed result into a CommandError. It returns nil for a
// successful result.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return gderrors.NewCommandError(r.Command.Name, r.Command.Args, "", r.Output, r.ExitCode, nil)
}

// Runner executes commands. Implementations may call a real binary or
// simulate output in tests.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// CommandRunner handles execution of external commands
type CommandRunner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithTimeout sets the timeout applied when the context has no deadline
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *CommandRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for per-invocation debug lines
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *CommandRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		timeout: DefaultCommandTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd synchronously. The returned error is only set for local
// validation failures, in which case no process was started. A non-zero
// exit status is reported through Result.OK, even when stderr is empty.
func (r *CommandRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if err := validate(cmd); err != nil {
		return Result{Command: cmd}, err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	res := Result{
		Command:  cmd,
		Duration: time.Since(start),
	}

	if err == nil {
		res.OK = true
		res.Output = stdout.String()
		r.logger.Debug("command finished", "cmd", cmd.String(), "dir", cmd.Dir, "duration", res.Duration)
		return res, nil
	}

	res.Output = stderr.String()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if ctx.Err() == context.DeadlineExceeded && res.Output == "" {
			res.Output = ctx.Err().Error()
		}
	default:
		// The process never started (binary missing, bad dir, deadline).
		res.ExitCode = -1
		if res.Output == "" {
			res.Output = err.Error()
		}
	}
	r.logger.Debug("command failed", "cmd", cmd.String(), "dir", cmd.Dir, "exit", res.ExitCode, "duration", res.Duration)
	return res, nil
}

func validate(cmd Command) error {
	if strings.TrimSpace(cmd.Name) == "" || len(cmd.Args) == 0 {
		return gderrors.EmptyCommand
	}
	info, err := os.Stat(cmd.Dir)
	if err != nil || !info.IsDir() {
		return gderrors.NewValidationError(gderrors.ErrInvalidWorkingDir, "Working directory does not exist: "+cmd.Dir)
	}
	f, err := os.Open(cmd.Dir)
	if err != nil {
		return gderrors.NewValidationError(gderrors.ErrInvalidWorkingDir, "Working directory is not readable: "+cmd.Dir)
	}
	_ = f.Close()
	return nil
}
