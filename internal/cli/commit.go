package cli

import (
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/runtime"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:          "commit",
		Short:        "Commit all tracked changes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return repoOperation(cmd, func(rt *runtime.Context) bool {
				return rt.Session.Commit(cmd.Context(), message)
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	return cmd
}
