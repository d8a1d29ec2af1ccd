// Package watch notices git state changes made outside gitdesk.
//
// A Watcher observes the repository's HEAD, packed-refs and refs/ tree and
// calls its callback once per burst of changes with the time the last change
// of the burst was seen.
package watch

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when a non-positive debounce is given
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches one repository's git directory
type Watcher struct {
	gitDir   string
	debounce time.Duration
	onChange func(last time.Time)
	logger   *slog.Logger

	fs *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// New starts watching gitDir, the metadata directory of a repository.
// onChange runs on its own goroutine after debounce has passed without
// further changes. last is when the final change of the burst was observed.
func New(gitDir string, debounce time.Duration, onChange func(last time.Time), logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("stat git dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", gitDir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		gitDir:   gitDir,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		fs:       fw,
		done:     make(chan struct{}),
	}

	if err := fw.Add(gitDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", gitDir, err)
	}
	if err := w.addRecursive(filepath.Join(gitDir, "refs")); err != nil {
		logger.Warn("watch refs failed", "path", gitDir, "error", err)
	}

	go w.observe()
	return w, nil
}

// Close stops the watcher. Pending notifications are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Debug("watch add failed", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) observe() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(ev.Name)
				}
			}
			w.schedule(time.Now())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "path", w.gitDir, "error", err)
		}
	}
}

// relevant reports whether ev touches HEAD, packed-refs or a ref
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasSuffix(ev.Name, ".lock") {
		return false
	}
	rel, err := filepath.Rel(w.gitDir, ev.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	switch {
	case rel == "HEAD", rel == "packed-refs":
		return true
	case rel == "refs", strings.HasPrefix(rel, "refs/"):
		return true
	}
	return false
}

func (w *Watcher) schedule(at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.closed || w.timer != t {
			w.mu.Unlock()
			return
		}
		w.timer = nil
		w.mu.Unlock()

		if w.onChange != nil {
			w.onChange(at)
		}
	})
	w.timer = t
}
