package session

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	gderrors "gitdesk.dev/gitdesk/internal/errors"
	"gitdesk.dev/gitdesk/internal/git"
)

// Open validates path and makes it the active repository. A folder without
// git metadata is reported and leaves the session unchanged.
func (s *Session) Open(ctx context.Context, path string) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	op := newOpID()
	repo, err := git.OpenRepository(path)
	if err != nil {
		s.logger.Debug("open failed", "op", op, "path", path, "error", err)
		s.fail(op, gderrors.NotGitRepository)
		return false
	}

	origin := ""
	if info, err := git.ParseRemoteURL(repo.OriginURL()); err == nil {
		origin = info.Slug()
	}

	s.mu.Lock()
	s.repo = repo
	s.origin = origin
	s.selected = ""
	s.current = ""
	s.branches = nil
	s.commits = nil
	s.mu.Unlock()

	s.log.AppendOp(op, "Repository: "+repo.Path())
	s.resync(ctx, op, repo.Path())
	return true
}

// SelectBranch records the branch used by Merge. The current-branch marker
// and surrounding whitespace are stripped.
func (s *Session) SelectBranch(name string) {
	name = git.CleanBranchName(name)

	s.mu.Lock()
	s.selected = name
	s.mu.Unlock()

	if name != "" {
		s.log.Append("Selected Branch: " + name)
	}
}

// Merge merges the selected branch into the checked out branch
func (s *Session) Merge(ctx context.Context) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	repo := s.activeRepo()
	s.mu.RLock()
	branch := s.selected
	s.mu.RUnlock()

	if repo == nil || branch == "" {
		s.fail("", gderrors.NoBranchSelected)
		return false
	}
	return s.mutate(ctx, repo.Path(), "merge", branch)
}

// Commit commits all tracked changes with message. It returns true only on
// success, so the caller knows when to clear its input.
func (s *Session) Commit(ctx context.Context, message string) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	repo := s.activeRepo()
	if repo == nil {
		s.fail("", gderrors.NoRepository)
		return false
	}
	message = strings.TrimSpace(message)
	if message == "" {
		s.fail("", gderrors.EmptyMessage)
		return false
	}
	return s.mutate(ctx, repo.Path(), "commit", "-am", message)
}

// Push pushes the stored current branch to origin
func (s *Session) Push(ctx context.Context) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	repo := s.activeRepo()
	if repo == nil {
		s.fail("", gderrors.NoRepository)
		return false
	}
	s.mu.RLock()
	branch := s.current
	s.mu.RUnlock()
	if branch == "" {
		s.fail("", gderrors.NoCurrentBranch)
		return false
	}
	return s.mutate(ctx, repo.Path(), "push", "origin", branch)
}

// Clone clones url into dest. The new repository is not selected and the
// active repository is not resynced. It returns true only on success.
func (s *Session) Clone(ctx context.Context, url, dest string) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	url = strings.TrimSpace(url)
	if url == "" {
		s.fail("", gderrors.EmptyURL)
		return false
	}
	if strings.TrimSpace(dest) == "" {
		s.fail("", gderrors.NoDestination)
		return false
	}
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		s.fail("", gderrors.NoDestination)
		return false
	}

	op := newOpID()
	res, ok := s.execute(ctx, op, git.Command{Name: s.Binary(), Args: []string{"clone", url}, Dir: dest})
	return ok && res.OK
}

// Fetch runs `git fetch` in the active repository
func (s *Session) Fetch(ctx context.Context) bool {
	return s.Run(ctx, []string{s.Binary(), "fetch"})
}

// Pull runs `git pull` in the active repository
func (s *Session) Pull(ctx context.Context) bool {
	return s.Run(ctx, []string{s.Binary(), "pull"})
}

// RunLine tokenizes line with shell quoting rules and runs it
func (s *Session) RunLine(ctx context.Context, line string) bool {
	argv, err := shellquote.Split(line)
	if err != nil {
		s.fail("", fmt.Errorf("invalid command line: %w", err))
		return false
	}
	return s.Run(ctx, argv)
}

// Run executes an arbitrary command in the active repository. argv[0] is
// the executable. A successful run triggers a resync.
func (s *Session) Run(ctx context.Context, argv []string) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	repo := s.activeRepo()
	if repo == nil {
		s.fail("", gderrors.NoRepository)
		return false
	}
	if len(argv) == 0 {
		s.fail("", gderrors.EmptyCommand)
		return false
	}

	op := newOpID()
	res, ok := s.execute(ctx, op, git.Command{Name: argv[0], Args: argv[1:], Dir: repo.Path()})
	if !ok || !res.OK {
		return false
	}
	s.resync(ctx, op, repo.Path())
	return true
}

// Refresh re-reads branches, current branch and commit log
func (s *Session) Refresh(ctx context.Context) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	repo := s.activeRepo()
	if repo == nil {
		s.fail("", gderrors.NoRepository)
		return false
	}
	return s.resync(ctx, newOpID(), repo.Path())
}

// mutate runs a git subcommand in dir and resyncs on success. The caller
// holds the guard.
func (s *Session) mutate(ctx context.Context, dir string, args ...string) bool {
	op := newOpID()
	res, ok := s.execute(ctx, op, git.Command{Name: s.Binary(), Args: args, Dir: dir})
	if !ok || !res.OK {
		return false
	}
	s.resync(ctx, op, dir)
	return true
}

// execute runs one command with the indicator shown and reports the result.
// ok is false when the command was rejected before starting.
func (s *Session) execute(ctx context.Context, op string, cmd git.Command) (git.Result, bool) {
	var (
		res git.Result
		err error
	)
	s.logger.Debug("operation started", "op", op, "cmd", cmd.String(), "dir", cmd.Dir)
	s.withIndicator(cmd.String(), func() {
		res, err = s.runner.Run(ctx, cmd)
	})
	if err != nil {
		s.fail(op, err)
		return res, false
	}

	if err := res.Err(); err != nil {
		s.logger.Warn("operation failed", "op", op, "error", err)
	} else {
		s.logger.Debug("operation finished", "op", op, "exit", res.ExitCode)
	}
	s.report(op, cmd, res)
	return res, true
}

// report appends the echo line and the captured output
func (s *Session) report(op string, cmd git.Command, res git.Result) {
	if res.OK {
		s.log.AppendOp(op, fmt.Sprintf("> %s\n%s", cmd.String(), res.Output))
		return
	}
	s.log.AppendOp(op, fmt.Sprintf("> %s\nError: %s", cmd.String(), res.Output))
}

// resync re-runs the three state queries once. A failed query blanks only
// its own state and reports stderr.
func (s *Session) resync(ctx context.Context, op, dir string) bool {
	var (
		branches    []git.Branch
		current     string
		commits     []git.Commit
		branchesRes git.Result
		currentRes  git.Result
		commitsRes  git.Result
		errs        [3]error
	)

	s.withIndicator("refresh", func() {
		branches, branchesRes, errs[0] = s.reader.ListBranches(ctx, dir)
		current, currentRes, errs[1] = s.reader.CurrentBranch(ctx, dir)
		commits, commitsRes, errs[2] = s.reader.CommitLog(ctx, dir)
	})

	s.mu.Lock()
	s.branches = branches
	s.current = current
	s.commits = commits
	s.mu.Unlock()

	ok := true
	for i, res := range []git.Result{branchesRes, currentRes, commitsRes} {
		switch {
		case errs[i] != nil:
			s.fail(op, errs[i])
			ok = false
		case !res.OK:
			s.logger.Warn("resync query failed", "op", op, "error", res.Err())
			s.log.AppendOp(op, "Error: "+res.Output)
			ok = false
		}
	}
	return ok
}

func newOpID() string {
	return uuid.NewString()
}
