// Package runtime provides a context type that holds the session, config and
// logger for use throughout the application. This avoids passing multiple
// parameters.
package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gitdesk.dev/gitdesk/internal/config"
	"gitdesk.dev/gitdesk/internal/credential"
	"gitdesk.dev/gitdesk/internal/git"
	"gitdesk.dev/gitdesk/internal/github"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/session"
)

// Context provides access to the session and output for commands
type Context struct {
	Config      *config.Config
	ConfigPath  string
	ConfigDir   string
	RepoPath    string
	Splog       *output.Splog
	Credentials *credential.Store
	Session     *session.Session
}

// Options configures NewContext
type Options struct {
	// ConfigPath overrides <config dir>/config.yaml
	ConfigPath string
	// RepoPath is the repository given on the command line
	RepoPath string
	// Out receives console messages; defaults to stderr
	Out io.Writer
	// Interactive is set when the TUI will own the terminal. Console
	// logging is silenced and the spinner is left to the TUI.
	Interactive bool
	// Runner replaces the git process runner
	Runner git.Runner
}

// NewContext loads the configuration and stored token and creates the session
func NewContext(opts Options) (*Context, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.Path(dir)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.ConfigPath != "" {
		// the token lives next to an explicitly chosen config file
		dir = filepath.Dir(opts.ConfigPath)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = output.GetLogFilePath()
	}
	splog, err := output.NewSplogWithConfig(out, logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var indicator session.Indicator
	if opts.Interactive {
		splog.SetQuiet(true)
	} else {
		indicator = output.NewProgress(splog)
	}

	creds := credential.NewStore(dir)
	if _, err := creds.Load(); err != nil {
		splog.Warn("Could not read stored GitHub token: %v", err)
	}

	runner := opts.Runner
	if runner == nil {
		runner = git.NewCommandRunner(
			git.WithTimeout(cfg.Git.Timeout),
			git.WithLogger(splog.FileLogger()),
		)
	}

	sess := session.New(session.Options{
		Runner:      runner,
		Binary:      cfg.Git.Binary,
		Credentials: creds,
		Lister:      listerFactory(cfg.GitHub, splog.FileLogger()),
		Indicator:   indicator,
		Log:         output.NewLog(splog.FileLogger()),
		Logger:      splog.FileLogger(),
	})

	return &Context{
		Config:      cfg,
		ConfigPath:  cfgPath,
		ConfigDir:   dir,
		RepoPath:    opts.RepoPath,
		Splog:       splog,
		Credentials: creds,
		Session:     sess,
	}, nil
}

// Close flushes the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}

func listerFactory(cfg config.GitHubConfig, logger *slog.Logger) session.ListerFactory {
	return func(ctx context.Context, token string) (session.Lister, error) {
		opts := []github.ClientOption{
			github.WithHost(cfg.Host),
			github.WithTimeout(cfg.Timeout),
		}
		if cfg.APIURL != "" {
			opts = append(opts, github.WithBaseURL(cfg.APIURL))
		}
		client, err := github.NewClient(ctx, token, opts...)
		if err != nil {
			return nil, err
		}
		logger.Debug("github client ready", "api", client.BaseURL())
		return client, nil
	}
}

type contextKey struct{}

// WithContext stores c in ctx
func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// GetContext returns the Context stored in ctx
func GetContext(ctx context.Context) (*Context, error) {
	if ctx == nil {
		return nil, fmt.Errorf("no runtime context")
	}
	c, ok := ctx.Value(contextKey{}).(*Context)
	if !ok || c == nil {
		return nil, fmt.Errorf("no runtime context")
	}
	return c, nil
}
