package cli

import (
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/runtime"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "push",
		Short:        "Push the current branch to origin",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return repoOperation(cmd, func(rt *runtime.Context) bool {
				return rt.Session.Push(cmd.Context())
			})
		},
	}
}
