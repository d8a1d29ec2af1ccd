package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newBranchesCmd creates the branches command
func newBranchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "branches",
		Short:        "List local branches, marking the current one",
		Aliases:      []string{"b"},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				if err := common.OpenRepository(cmd.Context(), cmd, rt); err != nil {
					return err
				}
				for _, b := range rt.Session.Snapshot().Branches {
					marker := "  "
					if b.Current {
						marker = "* "
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), marker+output.ColorBranchName(b.Name, false))
				}
				return nil
			})
		},
	}
}
