// Package common provides shared helper functions for CLI commands.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/git"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// ErrOperationFailed is returned when an operation reported its failure in
// the output log. The message has already been printed.
var ErrOperationFailed = errors.New("operation failed")

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	return fn(ctx)
}

// RepoPath resolves the repository to operate on: the --repo flag, else the
// working tree containing the current directory.
func RepoPath(rt *runtime.Context) string {
	if rt.RepoPath != "" {
		return rt.RepoPath
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if root, err := git.FindRepositoryRoot(wd); err == nil {
		return root
	}
	return wd
}

// OpenRepository selects the repository in the session. Its output is only
// printed when it fails.
func OpenRepository(ctx context.Context, cmd *cobra.Command, rt *runtime.Context) error {
	log := rt.Session.Log()
	from := log.Len()
	if !rt.Session.Open(ctx, RepoPath(rt)) {
		PrintLog(cmd.OutOrStdout(), log, from)
		return ErrOperationFailed
	}
	return nil
}

// Operation runs fn and prints everything it appended to the output log.
// A false result becomes ErrOperationFailed.
func Operation(cmd *cobra.Command, rt *runtime.Context, fn func() bool) error {
	log := rt.Session.Log()
	from := log.Len()
	ok := fn()
	PrintLog(cmd.OutOrStdout(), log, from)
	if !ok {
		return ErrOperationFailed
	}
	return nil
}

// PrintLog writes the entries from index from onwards, one block per entry
func PrintLog(w io.Writer, log *output.Log, from int) {
	for _, text := range log.Texts(from) {
		lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
		for _, line := range lines {
			_, _ = fmt.Fprintln(w, output.ColorOutputLine(line))
		}
	}
}

// CompleteBranches is a helper for cobra.ValidArgsFunction that returns the
// local branch names of the repository in the current directory.
func CompleteBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	root, err := git.FindRepositoryRoot(wd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	reader := git.NewReader(git.NewCommandRunner(), git.DefaultBinary)
	branches, res, err := reader.ListBranches(cmd.Context(), root)
	if err != nil || !res.OK {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
