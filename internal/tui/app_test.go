package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gogit "github.com/go-git/go-git/v5"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"gitdesk.dev/gitdesk/internal/credential"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/session"
	"gitdesk.dev/gitdesk/testhelpers"
)

const (
	branchQuery  = "branch --list"
	currentQuery = "rev-parse --abbrev-ref HEAD"
)

type appFixture struct {
	model  Model
	sess   *session.Session
	runner *testhelpers.FakeRunner
	dir    string
}

func newAppFixture(t *testing.T, opts Options) *appFixture {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	dir := filepath.Join(t.TempDir(), "repo")
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	runner := testhelpers.NewFakeRunner()
	runner.
		Succeed(branchQuery, "* main\n  feature\n  bugfix\n").
		Succeed(currentQuery, "main\n")

	sess := session.New(session.Options{
		Runner:      runner,
		Binary:      "git",
		Credentials: credential.NewStore(t.TempDir()),
		Log:         output.NewLog(nil),
	})
	return &appFixture{
		model:  NewModel(context.Background(), sess, opts),
		sess:   sess,
		runner: runner,
		dir:    dir,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model. When it dispatched an operation, the
// operation is run to completion and its result fed back. Other commands,
// like cursor blinks and spinner ticks, are dropped.
func (f *appFixture) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	if !f.model.busy {
		return
	}
	for _, m := range collect(cmd) {
		if done, ok := m.(opDoneMsg); ok {
			next, _ = f.model.Update(done)
			f.model = next.(Model)
		}
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func (f *appFixture) open(t *testing.T) {
	t.Helper()
	f.send(t, keyRunes("o"))
	require.Equal(t, promptOpen, f.model.prompt)
	f.send(t, keyRunes(f.dir))
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, f.model.snap.HasRepo())
	f.runner.Reset()
}

func TestModel_OpenShowsRepositoryState(t *testing.T) {
	f := newAppFixture(t, Options{})
	f.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	require.Contains(t, f.model.View(), "No repository")

	f.open(t)
	view := f.model.View()
	require.Contains(t, view, f.dir)
	require.Contains(t, view, "Branch: main")
	require.Contains(t, view, "feature")
	require.Contains(t, view, "Repository: "+f.dir)
	require.False(t, f.model.busy)
}

func TestModel_SelectAndMerge(t *testing.T) {
	f := newAppFixture(t, Options{})
	f.open(t)

	f.send(t, keyRunes("j"))
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "feature", f.sess.Snapshot().SelectedBranch)

	f.send(t, keyRunes("m"))
	require.Equal(t, "merge feature", f.runner.CallLines()[0])
	require.Contains(t, f.model.View(), "> git merge feature")
}

func TestModel_CursorStaysInRange(t *testing.T) {
	f := newAppFixture(t, Options{})
	f.open(t)

	for range 10 {
		f.send(t, keyRunes("j"))
	}
	require.Equal(t, 2, f.model.cursor)
	for range 10 {
		f.send(t, keyRunes("k"))
	}
	require.Zero(t, f.model.cursor)
}

func TestModel_CommitDraft(t *testing.T) {
	t.Run("kept on failure", func(t *testing.T) {
		f := newAppFixture(t, Options{})
		f.open(t)
		f.runner.Fail("commit -am wip", "nothing to commit")

		f.send(t, keyRunes("c"))
		f.send(t, keyRunes("wip"))
		f.send(t, tea.KeyMsg{Type: tea.KeyEnter})

		require.Equal(t, "wip", f.model.commitDraft)
		require.Contains(t, f.model.View(), "Error: nothing to commit")

		f.send(t, keyRunes("c"))
		require.Equal(t, "wip", f.model.input.Value())
	})

	t.Run("cleared on success", func(t *testing.T) {
		f := newAppFixture(t, Options{})
		f.open(t)

		f.send(t, keyRunes("c"))
		f.send(t, keyRunes("done"))
		f.send(t, tea.KeyMsg{Type: tea.KeyEnter})

		require.Empty(t, f.model.commitDraft)
		require.Equal(t, "commit -am done", f.runner.CallLines()[0])
	})

	t.Run("escape cancels without running", func(t *testing.T) {
		f := newAppFixture(t, Options{})
		f.open(t)

		f.send(t, keyRunes("c"))
		f.send(t, keyRunes("half"))
		f.send(t, tea.KeyMsg{Type: tea.KeyEsc})

		require.Equal(t, promptNone, f.model.prompt)
		require.Equal(t, "half", f.model.commitDraft)
		require.Empty(t, f.runner.Calls())
	})
}

func TestModel_BusyIgnoresActionKeys(t *testing.T) {
	f := newAppFixture(t, Options{})
	f.open(t)

	next, cmd := f.model.Update(keyRunes("f"))
	f.model = next.(Model)
	require.True(t, f.model.busy)
	require.Contains(t, f.model.View(), "fetch...")

	// a second action while the first is pending does nothing
	next, second := f.model.Update(keyRunes("p"))
	f.model = next.(Model)
	require.Nil(t, second)

	for _, m := range collect(cmd) {
		if done, ok := m.(opDoneMsg); ok {
			next, _ = f.model.Update(done)
			f.model = next.(Model)
		}
	}
	require.False(t, f.model.busy)
	require.Equal(t, 1, f.runner.CountPrefix("fetch"))
	require.Zero(t, f.runner.CountPrefix("pull"))
	require.NotContains(t, f.model.View(), "fetch...")
}

func TestModel_RunPrompt(t *testing.T) {
	f := newAppFixture(t, Options{})
	f.open(t)

	f.send(t, keyRunes("!"))
	require.Equal(t, "git ", f.model.input.Value())
	f.send(t, keyRunes(`commit -m "two words"`))
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []string{"commit", "-m", "two words"}, f.runner.Calls()[0].Args)
}

func TestModel_TokenPromptIsMasked(t *testing.T) {
	t.Setenv(credential.EnvVar, "")
	f := newAppFixture(t, Options{})

	f.send(t, keyRunes("t"))
	f.send(t, keyRunes("secret"))
	require.NotContains(t, f.model.View(), "secret")

	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, f.model.snap.HasToken)
	require.Contains(t, f.model.View(), "GitHub token set and saved.")
}

type fakeCloser struct{ closed bool }

func (c *fakeCloser) Close() error {
	c.closed = true
	return nil
}

func TestModel_WatchFollowsRepository(t *testing.T) {
	var (
		watched  []string
		closers  []*fakeCloser
		onChange func(time.Time)
	)
	f := newAppFixture(t, Options{
		Watch: func(path string, fn func(time.Time)) (io.Closer, error) {
			watched = append(watched, path)
			onChange = fn
			c := &fakeCloser{}
			closers = append(closers, c)
			return c, nil
		},
	})
	var sent []tea.Msg
	f.model.watch.send = func(msg tea.Msg) { sent = append(sent, msg) }

	f.open(t)
	require.Equal(t, []string{f.dir}, watched)

	// a change seen while the open was finishing is its own
	onChange(f.model.settledAt)
	require.Len(t, sent, 1)
	f.send(t, sent[0])
	require.Zero(t, f.runner.CountPrefix(branchQuery))

	onChange(f.model.settledAt.Add(time.Second))
	require.Len(t, sent, 2)
	f.send(t, sent[1])
	require.Equal(t, 1, f.runner.CountPrefix(branchQuery))

	f.send(t, keyRunes("q"))
	require.True(t, closers[0].closed)
}

func TestModel_WatchSkippedWhileBusy(t *testing.T) {
	f := newAppFixture(t, Options{})
	f.open(t)

	next, _ := f.model.Update(keyRunes("f"))
	f.model = next.(Model)
	next, cmd := f.model.Update(gitChangedMsg{last: time.Now().Add(time.Second)})
	f.model = next.(Model)
	require.Nil(t, cmd)
}

func TestModel_WatchFailureIsReported(t *testing.T) {
	f := newAppFixture(t, Options{
		Watch: func(string, func(time.Time)) (io.Closer, error) {
			return nil, errors.New("too many open files")
		},
	})
	f.model.watch.send = func(tea.Msg) {}

	f.open(t)
	require.Contains(t, f.model.View(), "Error: auto-refresh disabled: too many open files")
}

func TestClip(t *testing.T) {
	lines := []string{"title", "a", "b", "c", "d", "e"}

	require.Equal(t, lines, clip(lines, 10, 0))
	require.Equal(t, []string{"title", "a", "b"}, clip(lines, 3, 1))
	require.Equal(t, []string{"title", "d", "e"}, clip(lines, 3, 5))
	require.True(t, strings.HasPrefix(strings.Join(clip(lines, 4, 3), ","), "title,a"))
}
