// Package session holds the state of one gitdesk session and dispatches
// every user operation against it.
//
// A Session owns the active repository handle, the selected and current
// branch, the last branch listing and commit log, the output log and the
// stored credential. All operations pass through a single in-flight guard:
// an operation requested while another is running is rejected.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"gitdesk.dev/gitdesk/internal/credential"
	gderrors "gitdesk.dev/gitdesk/internal/errors"
	"gitdesk.dev/gitdesk/internal/git"
	"gitdesk.dev/gitdesk/internal/github"
	"gitdesk.dev/gitdesk/internal/output"
)

// Indicator is the busy indicator. Show is called immediately before an
// external call and Hide immediately after, before any result is reported.
type Indicator interface {
	Show(label string)
	Hide()
}

type noopIndicator struct{}

func (noopIndicator) Show(string) {}
func (noopIndicator) Hide()       {}

// Lister lists hosted repositories for the token it was created with
type Lister interface {
	ListUserRepos(ctx context.Context) ([]github.Repository, error)
	ListOrgRepos(ctx context.Context) ([]github.OrgRepositories, error)
}

// ListerFactory creates a Lister for a token
type ListerFactory func(ctx context.Context, token string) (Lister, error)

// Options configures a Session
type Options struct {
	Runner      git.Runner
	Binary      string
	Credentials *credential.Store
	Lister      ListerFactory
	Indicator   Indicator
	Log         *output.Log
	Logger      *slog.Logger
}

// Session is the explicit state of one user session
type Session struct {
	runner    git.Runner
	reader    *git.Reader
	creds     *credential.Store
	lister    ListerFactory
	indicator Indicator
	log       *output.Log
	logger    *slog.Logger

	busy atomic.Bool

	mu       sync.RWMutex
	repo     *git.Repository
	origin   string
	selected string
	current  string
	branches []git.Branch
	commits  []git.Commit
}

// New creates a Session. Runner and Credentials are required; the other
// options have working defaults.
func New(opts Options) *Session {
	s := &Session{
		runner:    opts.Runner,
		reader:    git.NewReader(opts.Runner, opts.Binary),
		creds:     opts.Credentials,
		lister:    opts.Lister,
		indicator: opts.Indicator,
		log:       opts.Log,
		logger:    opts.Logger,
	}
	if s.indicator == nil {
		s.indicator = noopIndicator{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.log == nil {
		s.log = output.NewLog(s.logger)
	}
	if s.lister == nil {
		s.lister = func(ctx context.Context, token string) (Lister, error) {
			client, err := github.NewClient(ctx, token)
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}
	return s
}

// Snapshot is a copy of the session state for rendering
type Snapshot struct {
	RepoPath       string
	Origin         string
	SelectedBranch string
	CurrentBranch  string
	Branches       []git.Branch
	Commits        []git.Commit
	Busy           bool
	HasToken       bool
}

// HasRepo reports whether a repository is selected
func (s Snapshot) HasRepo() bool {
	return s.RepoPath != ""
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Origin:         s.origin,
		SelectedBranch: s.selected,
		CurrentBranch:  s.current,
		Branches:       append([]git.Branch(nil), s.branches...),
		Commits:        append([]git.Commit(nil), s.commits...),
		Busy:           s.busy.Load(),
		HasToken:       s.creds != nil && s.creds.HasToken(),
	}
	if s.repo != nil {
		snap.RepoPath = s.repo.Path()
	}
	return snap
}

// Log returns the output log
func (s *Session) Log() *output.Log {
	return s.log
}

// Binary returns the git executable used for every command
func (s *Session) Binary() string {
	return s.reader.Binary()
}

// Busy reports whether an operation is in flight
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// CanMutate reports whether repository-scoped actions are enabled
func (s *Session) CanMutate() bool {
	return s.activeRepo() != nil
}

// activeRepo returns the repository handle, or nil when none is selected or
// its directory has disappeared.
func (s *Session) activeRepo() *git.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.repo == nil || !s.repo.Exists() {
		return nil
	}
	return s.repo
}

// acquire takes the in-flight guard. A rejected request is reported in the
// output log.
func (s *Session) acquire() bool {
	if !s.busy.CompareAndSwap(false, true) {
		s.fail("", gderrors.Busy)
		return false
	}
	return true
}

func (s *Session) release() {
	s.busy.Store(false)
}

// withIndicator runs fn with the busy indicator shown. Hide runs on every
// path, including panics.
func (s *Session) withIndicator(label string, fn func()) {
	s.indicator.Show(label)
	defer s.indicator.Hide()
	fn()
}

// fail appends a local error line
func (s *Session) fail(op string, err error) {
	s.log.AppendOp(op, "Error: "+err.Error())
}
