package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/session"
)

// WatchFunc starts watching the repository at path and calls onChange when
// its git state changes, passing the time the last change was seen. The
// returned Closer stops the watch.
type WatchFunc func(path string, onChange func(last time.Time)) (io.Closer, error)

// Options configures the application
type Options struct {
	// Watch enables auto-refresh when set
	Watch  WatchFunc
	Input  io.Reader
	Output io.Writer
}

type opKind int

const (
	opOpen opKind = iota
	opMerge
	opCommit
	opPush
	opFetch
	opPull
	opClone
	opRun
	opRefresh
	opToken
	opMyRepos
	opOrgRepos
)

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptCommit
	promptCloneURL
	promptCloneDest
	promptToken
	promptRun
)

var promptLabels = map[promptKind]string{
	promptOpen:      "Repository folder:",
	promptCommit:    "Commit message:",
	promptCloneURL:  "Clone URL:",
	promptCloneDest: "Clone into folder:",
	promptToken:     "GitHub token:",
	promptRun:       "Command:",
}

// opDoneMsg reports a finished session operation
type opDoneMsg struct {
	kind opKind
	ok   bool
}

// gitChangedMsg is sent by the watcher when HEAD or a ref moved
type gitChangedMsg struct {
	last time.Time
}

// selfChangeSlack covers watcher events that are delivered just after the
// operation that caused them has finished.
const selfChangeSlack = 100 * time.Millisecond

// watchState is shared by every copy of the model
type watchState struct {
	mu     sync.Mutex
	start  WatchFunc
	send   func(tea.Msg)
	closer io.Closer
	path   string
}

func (w *watchState) follow(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.start == nil || w.send == nil || path == w.path {
		return nil
	}
	if w.closer != nil {
		_ = w.closer.Close()
		w.closer = nil
	}
	w.path = ""
	if path == "" {
		return nil
	}
	send := w.send
	closer, err := w.start(path, func(last time.Time) { send(gitChangedMsg{last: last}) })
	if err != nil {
		return err
	}
	w.closer, w.path = closer, path
	return nil
}

func (w *watchState) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closer != nil {
		_ = w.closer.Close()
		w.closer = nil
	}
	w.path = ""
}

// Model is the bubbletea model of the gitdesk application
type Model struct {
	sess  *session.Session
	ctx   context.Context
	watch *watchState

	snap    session.Snapshot
	cursor  int
	logSeen int

	busy      bool
	busyLabel string
	spinner   spinner.Model
	// settledAt is when the last operation finished. Changes seen before
	// it were made by that operation and already resynced.
	settledAt time.Time

	prompt      promptKind
	input       textinput.Model
	commitDraft string
	cloneURL    string

	output   viewport.Model
	width    int
	height   int
	quitting bool
	styles   appStyles
}

// NewModel creates the application model for sess
func NewModel(ctx context.Context, sess *session.Session, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 80

	styles := newAppStyles()
	s.Style = styles.spinner

	m := Model{
		sess:    sess,
		ctx:     ctx,
		watch:   &watchState{start: opts.Watch},
		snap:    sess.Snapshot(),
		spinner: s,
		input:   ti,
		output:  viewport.New(80, 10),
		width:   80,
		height:  24,
		styles:  styles,
	}
	m.syncOutput()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		return m.finish(msg)

	case gitChangedMsg:
		if m.busy || m.sess.Busy() || !m.snap.HasRepo() {
			return m, nil
		}
		if !msg.last.After(m.settledAt.Add(selfChangeSlack)) {
			return m, nil
		}
		return m.dispatch(opRefresh, "refresh", func(ctx context.Context) bool {
			return m.sess.Refresh(ctx)
		})

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.watch.close()
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "pgup":
		m.output.SetYOffset(m.output.YOffset - m.output.Height)
		return m, nil
	case "pgdown":
		m.output.SetYOffset(m.output.YOffset + m.output.Height)
		return m, nil
	case "j", "down":
		if m.cursor < len(m.snap.Branches)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	// action keys wait for the running operation
	if m.busy {
		return m, nil
	}

	sess := m.sess
	switch msg.String() {
	case "o":
		return m.openPrompt(promptOpen, m.snap.RepoPath)
	case "enter", " ":
		if m.cursor < len(m.snap.Branches) {
			sess.SelectBranch(m.snap.Branches[m.cursor].Name)
			m.refreshFromSession()
		}
		return m, nil
	case "m":
		return m.dispatch(opMerge, "merge", sess.Merge)
	case "c":
		return m.openPrompt(promptCommit, m.commitDraft)
	case "P":
		return m.dispatch(opPush, "push", sess.Push)
	case "f":
		return m.dispatch(opFetch, "fetch", sess.Fetch)
	case "p":
		return m.dispatch(opPull, "pull", sess.Pull)
	case "C":
		return m.openPrompt(promptCloneURL, m.cloneURL)
	case "t":
		return m.openPrompt(promptToken, "")
	case "u":
		return m.dispatch(opMyRepos, "list repositories", sess.ListMyRepos)
	case "O":
		return m.dispatch(opOrgRepos, "list organization repositories", sess.ListOrgRepos)
	case "r":
		return m.dispatch(opRefresh, "refresh", sess.Refresh)
	case "!", ":":
		return m.openPrompt(promptRun, "git ")
	}
	return m, nil
}

func (m Model) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.EchoMode = textinput.EchoNormal
	if kind == promptToken {
		m.input.EchoMode = textinput.EchoPassword
	}
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) closePrompt() Model {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
	return m
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.prompt == promptCommit {
			m.commitDraft = m.input.Value()
		}
		return m.closePrompt(), nil
	case tea.KeyEnter:
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	kind := m.prompt
	m = m.closePrompt()

	sess := m.sess
	switch kind {
	case promptOpen:
		return m.dispatch(opOpen, "open", func(ctx context.Context) bool {
			return sess.Open(ctx, strings.TrimSpace(value))
		})
	case promptCommit:
		m.commitDraft = value
		return m.dispatch(opCommit, "commit", func(ctx context.Context) bool {
			return sess.Commit(ctx, value)
		})
	case promptCloneURL:
		m.cloneURL = value
		dest := ""
		if wd, err := os.Getwd(); err == nil {
			dest = wd
		}
		return m.openPrompt(promptCloneDest, dest)
	case promptCloneDest:
		url := m.cloneURL
		return m.dispatch(opClone, "clone", func(ctx context.Context) bool {
			return sess.Clone(ctx, url, strings.TrimSpace(value))
		})
	case promptToken:
		return m.dispatch(opToken, "save token", func(context.Context) bool {
			return sess.SetToken(value)
		})
	case promptRun:
		return m.dispatch(opRun, "run", func(ctx context.Context) bool {
			return sess.RunLine(ctx, value)
		})
	}
	return m, nil
}

// dispatch shows the spinner and runs fn off the event loop
func (m Model) dispatch(kind opKind, label string, fn func(context.Context) bool) (tea.Model, tea.Cmd) {
	m.busy = true
	m.busyLabel = label
	ctx := m.ctx
	run := func() tea.Msg {
		return opDoneMsg{kind: kind, ok: fn(ctx)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

// finish hides the spinner before the new output is rendered
func (m Model) finish(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.busyLabel = ""
	m.settledAt = time.Now()

	if msg.ok {
		switch msg.kind {
		case opCommit:
			m.commitDraft = ""
		case opClone:
			m.cloneURL = ""
		}
	}
	m.refreshFromSession()

	if msg.kind == opOpen && msg.ok {
		if err := m.watch.follow(m.snap.RepoPath); err != nil {
			m.sess.Log().Append(fmt.Sprintf("Error: auto-refresh disabled: %v", err))
			m.syncOutput()
		}
	}
	return m, nil
}

// refreshFromSession copies session state into the model
func (m *Model) refreshFromSession() {
	m.snap = m.sess.Snapshot()
	if m.cursor >= len(m.snap.Branches) {
		m.cursor = max(len(m.snap.Branches)-1, 0)
	}
	m.syncOutput()
}

func (m *Model) syncOutput() {
	texts := m.sess.Log().Texts(0)
	lines := make([]string, 0, len(texts))
	for _, t := range texts {
		for _, line := range strings.Split(t, "\n") {
			lines = append(lines, output.ColorOutputLine(line))
		}
	}
	m.output.SetContent(strings.Join(lines, "\n"))
	if len(texts) != m.logSeen {
		m.output.GotoBottom()
		m.logSeen = len(texts)
	}
}

func (m *Model) layout() {
	outputHeight := max(m.height/3, 3)
	m.output.Width = max(m.width-2, 10)
	m.output.Height = outputHeight
	m.input.Width = max(m.width-lipgloss.Width(promptLabels[promptCloneDest])-4, 10)
	m.syncOutput()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	if !m.snap.HasRepo() {
		return m.styles.header.Render("gitdesk") + "  " + m.styles.label.Render("No repository (press o to open)")
	}
	parts := []string{
		m.styles.header.Render(m.snap.RepoPath),
		"Branch: " + m.snap.CurrentBranch,
	}
	if m.snap.Origin != "" {
		parts = append(parts, m.styles.label.Render(m.snap.Origin))
	}
	if m.snap.SelectedBranch != "" {
		parts = append(parts, m.styles.label.Render("Selected: "+m.snap.SelectedBranch))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderPanes() string {
	listHeight := max(m.height-m.output.Height-6, 3)
	branchWidth := max(m.width/3, 20)
	commitWidth := max(m.width-branchWidth-4, 20)

	var branches []string
	branches = append(branches, m.styles.title.Render("Branches"))
	for i, br := range m.snap.Branches {
		line := output.ColorBranchName(br.Name, br.Current)
		if i == m.cursor {
			line = m.styles.selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		branches = append(branches, line)
	}
	branches = clip(branches, listHeight, m.cursor+1)

	var commits []string
	commits = append(commits, m.styles.title.Render("History"))
	for _, c := range m.snap.Commits {
		commits = append(commits, output.FormatGraphLine(c.Line))
	}
	commits = clip(commits, listHeight, 0)

	left := m.styles.pane.Width(branchWidth - 2).Render(strings.Join(branches, "\n"))
	right := m.styles.pane.Width(commitWidth - 2).Render(strings.Join(commits, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// clip keeps at most n lines, scrolled so that line focus stays visible.
// The first line is a title and always kept.
func clip(lines []string, n, focus int) []string {
	if len(lines) <= n || n < 2 {
		return lines
	}
	start := 1
	if focus >= n {
		start = focus - n + 2
	}
	end := min(start+n-1, len(lines))
	return append([]string{lines[0]}, lines[start:end]...)
}

func (m Model) renderFooter() string {
	switch {
	case m.prompt != promptNone:
		return promptLabels[m.prompt] + " " + m.input.View()
	case m.busy:
		return m.spinner.View() + " " + m.busyLabel + "..."
	}
	return m.styles.help.Render("o open  j/k move  enter select  m merge  c commit  P push  f fetch  p pull  C clone  ! run  r refresh  t token  u repos  O org repos  q quit")
}

// Run starts the application and blocks until the user quits
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	m := NewModel(ctx, sess, opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(m, progOpts...)

	m.watch.mu.Lock()
	m.watch.send = p.Send
	m.watch.mu.Unlock()
	defer m.watch.close()

	if err := m.watch.follow(m.snap.RepoPath); err != nil {
		sess.Log().Append(fmt.Sprintf("Error: auto-refresh disabled: %v", err))
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
