package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show the repository, its current branch and origin",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				if err := common.OpenRepository(cmd.Context(), cmd, rt); err != nil {
					return err
				}
				snap := rt.Session.Snapshot()
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Repository: %s\n", snap.RepoPath)
				_, _ = fmt.Fprintf(out, "Branch: %s\n", snap.CurrentBranch)
				if snap.Origin != "" {
					_, _ = fmt.Fprintf(out, "Origin: %s\n", snap.Origin)
				}
				_, _ = fmt.Fprintf(out, "Branches: %d\n", len(snap.Branches))
				if snap.HasToken {
					_, _ = fmt.Fprintln(out, "GitHub token: set")
				} else {
					_, _ = fmt.Fprintln(out, "GitHub token: not set")
				}
				return nil
			})
		},
	}
}
