package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:          "log",
		Short:        "Show the commit graph of the current branch",
		Aliases:      []string{"l"},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				if err := common.OpenRepository(cmd.Context(), cmd, rt); err != nil {
					return err
				}
				commits := rt.Session.Snapshot().Commits
				if limit > 0 && len(commits) > limit {
					commits = commits[:limit]
				}
				for _, c := range commits {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), output.FormatGraphLine(c.Line))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Only show this many lines")
	return cmd
}
