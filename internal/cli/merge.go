package cli

import (
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "merge <branch>",
		Short:             "Merge a branch into the current branch",
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		ValidArgsFunction: common.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repoOperation(cmd, func(rt *runtime.Context) bool {
				rt.Session.SelectBranch(args[0])
				return rt.Session.Merge(cmd.Context())
			})
		},
	}
}
