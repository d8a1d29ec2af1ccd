package output

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Progress is a busy indicator for command-line runs. Show is called before
// a blocking operation and Hide once it returns.
type Progress interface {
	Show(label string)
	Hide()
}

// NewProgress creates the appropriate progress display based on TTY availability
func NewProgress(splog *Splog) Progress {
	if IsTTY() {
		return NewTTYProgress(os.Stderr)
	}
	return NewSimpleProgress(splog)
}

// SimpleProgress prints one line per operation (non-TTY)
type SimpleProgress struct {
	splog *Splog
}

// NewSimpleProgress creates a line based progress display
func NewSimpleProgress(splog *Splog) *SimpleProgress {
	return &SimpleProgress{splog: splog}
}

func (p *SimpleProgress) Show(label string) {
	p.splog.Debug("  ⋯ %s...", label)
}

func (p *SimpleProgress) Hide() {}

// TTYProgress animates a spinner on its own bubbletea program
type TTYProgress struct {
	out     io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTTYProgress creates a spinner writing to out
func NewTTYProgress(out io.Writer) *TTYProgress {
	return &TTYProgress{out: out}
}

func (p *TTYProgress) Show(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.program != nil {
		return
	}

	p.program = tea.NewProgram(newProgressModel(label), tea.WithOutput(p.out), tea.WithInput(nil))
	p.done = make(chan struct{})
	go func(prog *tea.Program, done chan struct{}) {
		_, _ = prog.Run()
		close(done)
	}(p.program, p.done)
}

func (p *TTYProgress) Hide() {
	p.mu.Lock()
	prog, done := p.program, p.done
	p.program, p.done = nil, nil
	p.mu.Unlock()

	if prog == nil {
		return
	}
	prog.Send(progressDoneMsg{})
	<-done
}

type progressDoneMsg struct{}

type progressModel struct {
	label   string
	spinner spinner.Model
	done    bool
}

func newProgressModel(label string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return progressModel{label: label, spinner: s}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label + "...\n"
}
