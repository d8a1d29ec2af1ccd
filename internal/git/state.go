package git

import (
	"context"
	"strings"
)

// LogFormat is the pretty format used for the commit history view
const LogFormat = "%h - %s (%cr) <%an>"

// currentBranchMarker prefixes the checked out branch in `git branch` output
const currentBranchMarker = "*"

// Branch is one entry of a branch listing
type Branch struct {
	Name    string
	Current bool
}

// Commit is one line of graph-annotated log output. It is kept verbatim and
// never parsed further.
type Commit struct {
	Line string
}

// Reader runs the read-only state queries against a repository.
type Reader struct {
	runner Runner
	binary string
}

// NewReader creates a Reader. An empty binary defaults to "git".
func NewReader(runner Runner, binary string) *Reader {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Reader{runner: runner, binary: binary}
}

// Binary returns the git executable the reader invokes
func (r *Reader) Binary() string {
	return r.binary
}

// ListBranches returns the local branches. On failure the slice is nil and
// the result carries stderr.
func (r *Reader) ListBranches(ctx context.Context, dir string) ([]Branch, Result, error) {
	res, err := r.runner.Run(ctx, r.command(dir, "branch", "--list"))
	if err != nil || !res.OK {
		return nil, res, err
	}
	return ParseBranches(res.Output), res, nil
}

// CurrentBranch returns the checked out branch name. A detached HEAD yields
// whatever git prints; the value is not validated.
func (r *Reader) CurrentBranch(ctx context.Context, dir string) (string, Result, error) {
	res, err := r.runner.Run(ctx, r.command(dir, "rev-parse", "--abbrev-ref", "HEAD"))
	if err != nil || !res.OK {
		return "", res, err
	}
	return strings.TrimSpace(res.Output), res, nil
}

// CommitLog returns the graph-annotated history, most recent first.
func (r *Reader) CommitLog(ctx context.Context, dir string) ([]Commit, Result, error) {
	res, err := r.runner.Run(ctx, r.command(dir, "log", "--graph", "--pretty=format:"+LogFormat, "--abbrev-commit"))
	if err != nil || !res.OK {
		return nil, res, err
	}
	return ParseCommitLog(res.Output), res, nil
}

func (r *Reader) command(dir string, args ...string) Command {
	return Command{Name: r.binary, Args: args, Dir: dir}
}

// ParseBranches parses `git branch --list` output. Every non-empty line
// yields one Branch with the marker and surrounding whitespace removed.
func ParseBranches(output string) []Branch {
	var branches []Branch
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		branch := Branch{}
		if rest, ok := strings.CutPrefix(trimmed, currentBranchMarker); ok {
			branch.Current = true
			trimmed = strings.TrimSpace(rest)
		}
		branch.Name = trimmed
		branches = append(branches, branch)
	}
	return branches
}

// ParseCommitLog splits log output into one Commit per line, preserving
// order and content.
func ParseCommitLog(output string) []Commit {
	output = strings.TrimRight(output, "\n")
	if strings.TrimSpace(output) == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		commits = append(commits, Commit{Line: strings.TrimRight(line, "\r")})
	}
	return commits
}

// CleanBranchName strips the current-branch marker and whitespace from a
// displayed branch entry.
func CleanBranchName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, currentBranchMarker, ""))
}
