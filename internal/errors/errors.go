// Package errors provides sentinel errors and custom error types for gitdesk.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for local validation failures. None of these start a
// process or an HTTP request.
var (
	// ErrNoRepository indicates that no repository is selected
	ErrNoRepository = errors.New("no repository selected")

	// ErrNotGitRepository indicates that a folder has no git metadata directory
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrNoBranchSelected indicates that merge was requested without a branch
	ErrNoBranchSelected = errors.New("no branch selected")

	// ErrNoCurrentBranch indicates that the current branch is unknown
	ErrNoCurrentBranch = errors.New("no current branch")

	// ErrEmptyMessage indicates an empty commit message
	ErrEmptyMessage = errors.New("empty commit message")

	// ErrEmptyURL indicates an empty clone URL
	ErrEmptyURL = errors.New("empty clone url")

	// ErrNoDestination indicates that no clone destination was chosen
	ErrNoDestination = errors.New("no destination selected")

	// ErrNoToken indicates that no GitHub token is stored
	ErrNoToken = errors.New("github token not set")

	// ErrEmptyCommand indicates a command with no executable or arguments
	ErrEmptyCommand = errors.New("empty command")

	// ErrInvalidWorkingDir indicates a working directory that cannot be used
	ErrInvalidWorkingDir = errors.New("invalid working directory")

	// ErrBusy indicates that another operation is still running
	ErrBusy = errors.New("operation in progress")
)

// ValidationError is a local validation failure carrying the message shown to
// the user. It matches its sentinel through errors.Is.
type ValidationError struct {
	Sentinel error
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is returns true if the target is the wrapped sentinel
func (e *ValidationError) Is(target error) bool {
	return target == e.Sentinel
}

// Unwrap returns the sentinel
func (e *ValidationError) Unwrap() error {
	return e.Sentinel
}

// NewValidationError creates a new ValidationError
func NewValidationError(sentinel error, message string) *ValidationError {
	return &ValidationError{Sentinel: sentinel, Message: message}
}

// Validation errors with the exact wording shown in the output log.
var (
	NoRepository     = NewValidationError(ErrNoRepository, "No repository selected!")
	NotGitRepository = NewValidationError(ErrNotGitRepository, "Selected folder is not a Git repository!")
	NoBranchSelected = NewValidationError(ErrNoBranchSelected, "No branch selected for merging!")
	NoCurrentBranch  = NewValidationError(ErrNoCurrentBranch, "No current branch to push!")
	EmptyMessage     = NewValidationError(ErrEmptyMessage, "Commit message cannot be empty!")
	EmptyURL         = NewValidationError(ErrEmptyURL, "Clone URL is empty!")
	NoDestination    = NewValidationError(ErrNoDestination, "No folder selected!")
	NoToken          = NewValidationError(ErrNoToken, "GitHub token is not set.")
	TokenNotSet      = NewValidationError(ErrNoToken, "GitHub token not set.")
	EmptyCommand     = NewValidationError(ErrEmptyCommand, "Command is empty!")
	Busy             = NewValidationError(ErrBusy, "Another operation is already running!")
)

// CommandError represents a failed external command execution
type CommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}
