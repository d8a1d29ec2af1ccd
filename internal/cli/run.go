package cli

import (
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/runtime"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command in the repository and refresh its state",
		Long: `Run a command in the repository and refresh its state.

Everything after -- is passed as-is, for example:
  gitdesk run -- git stash list
  gitdesk run -- git commit -m "two words"`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repoOperation(cmd, func(rt *runtime.Context) bool {
				return rt.Session.Run(cmd.Context(), args)
			})
		},
	}
}
