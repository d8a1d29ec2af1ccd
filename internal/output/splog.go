// Package output provides logging, the session output log and text styling.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults, overridable through GITDESK_LOG_MAX_SIZE (megabytes),
// GITDESK_LOG_MAX_BACKUPS and GITDESK_LOG_MAX_AGE (days).
const (
	defaultLogMaxSize    = 1
	defaultLogMaxBackups = 2
	defaultLogMaxAge     = 30
)

// consoleHandler prints the bare message of each record. Warnings get a
// prefix, debug records only pass when DEBUG is set.
type consoleHandler struct {
	w     io.Writer
	debug bool
	quiet *atomic.Bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > slog.LevelDebug || h.debug
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	if h.quiet.Load() {
		return nil
	}
	msg := r.Message
	switch {
	case r.Level >= slog.LevelError:
		msg = "Error: " + msg
	case r.Level >= slog.LevelWarn:
		msg = "Warning: " + msg
	}
	_, err := fmt.Fprintln(h.w, msg)
	return err
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(string) slog.Handler      { return h }

// teeHandler passes each record to every handler that accepts its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

func envInt(name string, def, min int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < min {
		return def
	}
	return v
}

// createLumberjackLogger returns the rotating writer for path
func createLumberjackLogger(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    envInt("GITDESK_LOG_MAX_SIZE", defaultLogMaxSize, 1),
		MaxBackups: envInt("GITDESK_LOG_MAX_BACKUPS", defaultLogMaxBackups, 0),
		MaxAge:     envInt("GITDESK_LOG_MAX_AGE", defaultLogMaxAge, 1),
	}
}

// Splog writes console messages and, when a log file is configured, a
// timestamped record of everything including debug output.
type Splog struct {
	logger     *slog.Logger
	fileLogger *slog.Logger
	file       io.Closer
	quiet      atomic.Bool
}

// NewSplogWithConfig creates a splog printing to w and, when logFilePath is
// set, logging to a rotating file.
func NewSplogWithConfig(w io.Writer, logFilePath string) (*Splog, error) {
	if w == nil {
		w = os.Stderr
	}
	s := &Splog{fileLogger: slog.New(slog.DiscardHandler)}
	handlers := teeHandler{&consoleHandler{
		w:     w,
		debug: os.Getenv("DEBUG") != "",
		quiet: &s.quiet,
	}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := createLumberjackLogger(logFilePath)
		fileHandler := slog.NewTextHandler(rotating, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		})
		s.file = rotating
		s.fileLogger = slog.New(fileHandler)
		handlers = append(handlers, fileHandler)
	}

	s.logger = slog.New(handlers)
	return s, nil
}

// FileLogger returns a logger that only writes to the log file. Without a
// file it discards everything.
func (s *Splog) FileLogger() *slog.Logger {
	return s.fileLogger
}

// SetQuiet suppresses console output, used while the TUI owns the terminal
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet.Store(quiet)
}

// IsQuiet returns whether console output is suppressed
func (s *Splog) IsQuiet() bool {
	return s.quiet.Load()
}

func (s *Splog) log(level slog.Level, f string, args []any) {
	msg := f
	if len(args) > 0 {
		msg = fmt.Sprintf(f, args...)
	}
	s.logger.Log(context.Background(), level, msg)
}

// Info writes an info message
// nolint // printf-style wrapper
func (s *Splog) Info(f string, args ...any) {
	s.log(slog.LevelInfo, f, args)
}

// Warn writes a warning message
// nolint // printf-style wrapper
func (s *Splog) Warn(f string, args ...any) {
	s.log(slog.LevelWarn, f, args)
}

// Debug writes a debug message
// nolint // printf-style wrapper
func (s *Splog) Debug(f string, args ...any) {
	s.log(slog.LevelDebug, f, args)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
