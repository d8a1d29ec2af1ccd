package output

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is one block appended to the output log. Text may span lines.
type Entry struct {
	Op   string
	Text string
	At   time.Time
}

// Log is the append-only output log shown to the user. Every entry is also
// written to the mirror logger so a session can be reconstructed from disk.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	mirror  *slog.Logger
}

// NewLog creates an empty log. A nil mirror discards.
func NewLog(mirror *slog.Logger) *Log {
	if mirror == nil {
		mirror = slog.New(slog.DiscardHandler)
	}
	return &Log{mirror: mirror}
}

// Append adds an entry that belongs to no operation
func (l *Log) Append(text string) {
	l.AppendOp("", text)
}

// AppendOp adds an entry tagged with an operation id
func (l *Log) AppendOp(op, text string) {
	e := Entry{Op: op, Text: text, At: time.Now()}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	if op != "" {
		l.mirror.Info("output", "op", op, "text", text)
	} else {
		l.mirror.Info("output", "text", text)
	}
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Texts returns the text of every entry from index from onwards
func (l *Log) Texts(from int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if from < 0 {
		from = 0
	}
	if from >= len(l.entries) {
		return nil
	}
	out := make([]string, 0, len(l.entries)-from)
	for _, e := range l.entries[from:] {
		out = append(out, e.Text)
	}
	return out
}

// String joins all entries with newlines
func (l *Log) String() string {
	return strings.Join(l.Texts(0), "\n")
}
