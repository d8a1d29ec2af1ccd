package watch_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"gitdesk.dev/gitdesk/internal/watch"
)

// initRepo returns the work tree and its git dir
func initRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, filepath.Join(dir, ".git")
}

func TestWatcher_HeadChange(t *testing.T) {
	dir, gitDir := initRepo(t)

	var calls atomic.Int32
	w, err := watch.New(gitDir, 50*time.Millisecond, func(time.Time) { calls.Add(1) }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	head := filepath.Join(dir, ".git", "HEAD")
	for range 3 {
		require.NoError(t, os.WriteFile(head, []byte("ref: refs/heads/other\n"), 0644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	// the burst is coalesced
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcher_NewRef(t *testing.T) {
	dir, gitDir := initRepo(t)

	var calls atomic.Int32
	w, err := watch.New(gitDir, 20*time.Millisecond, func(time.Time) { calls.Add(1) }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ref := filepath.Join(dir, ".git", "refs", "heads", "feature")
	require.NoError(t, os.WriteFile(ref, []byte("0000000000000000000000000000000000000000\n"), 0644))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir, gitDir := initRepo(t)

	var calls atomic.Int32
	w, err := watch.New(gitDir, 20*time.Millisecond, func(time.Time) { calls.Add(1) }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "COMMIT_EDITMSG"), []byte("msg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD.lock"), []byte("x"), 0644))

	time.Sleep(200 * time.Millisecond)
	require.Zero(t, calls.Load())
}

func TestWatcher_CloseDropsPending(t *testing.T) {
	dir, gitDir := initRepo(t)

	var calls atomic.Int32
	w, err := watch.New(gitDir, time.Second, func(time.Time) { calls.Add(1) }, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref: refs/heads/x\n"), 0644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	time.Sleep(1200 * time.Millisecond)
	require.Zero(t, calls.Load())
}

func TestWatcher_ReportsLastChangeOfBurst(t *testing.T) {
	dir, gitDir := initRepo(t)

	seen := make(chan time.Time, 4)
	w, err := watch.New(gitDir, 200*time.Millisecond, func(last time.Time) { seen <- last }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	head := filepath.Join(dir, ".git", "HEAD")
	require.NoError(t, os.WriteFile(head, []byte("ref: refs/heads/a\n"), 0644))
	time.Sleep(30 * time.Millisecond)
	beforeLast := time.Now()
	require.NoError(t, os.WriteFile(head, []byte("ref: refs/heads/b\n"), 0644))

	select {
	case last := <-seen:
		require.False(t, last.Before(beforeLast), "last %v should not precede the final write at %v", last, beforeLast)
		require.True(t, time.Since(last) >= 200*time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestNew_RequiresGitDir(t *testing.T) {
	_, err := watch.New(filepath.Join(t.TempDir(), ".git"), 0, nil, nil)
	require.Error(t, err)
}
