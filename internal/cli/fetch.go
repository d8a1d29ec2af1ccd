package cli

import (
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newFetchCmd creates the fetch command
func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "fetch",
		Short:        "Run git fetch in the repository",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return repoOperation(cmd, func(rt *runtime.Context) bool {
				return rt.Session.Fetch(cmd.Context())
			})
		},
	}
}

// newPullCmd creates the pull command
func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "pull",
		Short:        "Run git pull in the repository",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return repoOperation(cmd, func(rt *runtime.Context) bool {
				return rt.Session.Pull(cmd.Context())
			})
		},
	}
}

// repoOperation opens the repository, then runs fn and prints its output
func repoOperation(cmd *cobra.Command, fn func(rt *runtime.Context) bool) error {
	return common.Run(cmd, func(rt *runtime.Context) error {
		if err := common.OpenRepository(cmd.Context(), cmd, rt); err != nil {
			return err
		}
		return common.Operation(cmd, rt, func() bool { return fn(rt) })
	})
}
