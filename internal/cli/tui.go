package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/git"
	"gitdesk.dev/gitdesk/internal/runtime"
	"gitdesk.dev/gitdesk/internal/tui"
	"gitdesk.dev/gitdesk/internal/watch"
)

// runTUI starts the interactive interface. The repository is opened first
// when the --repo flag or the current directory names one.
func runTUI(cmd *cobra.Command, rt *runtime.Context) error {
	ctx := cmd.Context()
	if path := common.RepoPath(rt); path != "" {
		if _, err := git.OpenRepository(path); err == nil {
			rt.Session.Open(ctx, path)
		}
	}

	opts := tui.Options{
		Input:  cmd.InOrStdin(),
		Output: cmd.OutOrStdout(),
	}
	if rt.Config.UI.Watch {
		debounce := rt.Config.UI.WatchDebounce
		logger := rt.Splog.FileLogger()
		opts.Watch = func(path string, onChange func(last time.Time)) (io.Closer, error) {
			repo, err := git.OpenRepository(path)
			if err != nil {
				return nil, err
			}
			w, err := watch.New(repo.GitDir(), debounce, onChange, logger)
			if err != nil {
				return nil, err
			}
			return w, nil
		}
	}
	return tui.Run(ctx, rt.Session, opts)
}
