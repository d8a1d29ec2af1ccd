package git

import (
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	gderrors "gitdesk.dev/gitdesk/internal/errors"
)

// Repository is the handle on a selected working tree. It is created on
// selection and becomes invalid once the directory disappears.
type Repository struct {
	repo *gogit.Repository
	path string
}

// OpenRepository validates that path holds a git metadata entry and opens
// it. Any failure is reported as NotGitRepository so the user sees a single
// message.
func OpenRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, gderrors.NotGitRepository
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	// .git is a directory for regular clones and a file for linked worktrees.
	// Parent directories are deliberately not searched.
	if _, err := os.Stat(filepath.Join(absPath, ".git")); err != nil {
		return nil, gderrors.NotGitRepository
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gderrors.NotGitRepository, err)
	}

	return &Repository{
		repo: repo,
		path: absPath,
	}, nil
}

// FindRepositoryRoot returns the working tree root containing dir, searching
// parent directories. It is used to pick a default repository for the
// command line; OpenRepository itself never searches.
func FindRepositoryRoot(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", gderrors.NotGitRepository, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %v", gderrors.NotGitRepository, err)
	}
	return wt.Filesystem.Root(), nil
}

// Path returns the absolute working tree path
func (r *Repository) Path() string {
	return r.path
}

// Exists reports whether the working tree and its metadata are still on disk
func (r *Repository) Exists() bool {
	if r == nil {
		return false
	}
	_, err := os.Stat(filepath.Join(r.path, ".git"))
	return err == nil
}

// GitDir returns the metadata directory. For linked worktrees this is the
// directory the .git file points at.
func (r *Repository) GitDir() string {
	dotGit := filepath.Join(r.path, ".git")
	info, err := os.Stat(dotGit)
	if err != nil || info.IsDir() {
		return dotGit
	}
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return dotGit
	}
	if dir, ok := parseGitDirFile(string(data)); ok {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.path, dir)
		}
		return dir
	}
	return dotGit
}

// OriginURL returns the first URL configured for the origin remote, or an
// empty string when there is none.
func (r *Repository) OriginURL() string {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
