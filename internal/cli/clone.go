package cli

import (
	"os"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newCloneCmd creates the clone command
func newCloneCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:          "clone <url>",
		Short:        "Clone a repository into a folder",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				target := dest
				if target == "" {
					wd, err := os.Getwd()
					if err != nil {
						return err
					}
					target = wd
				}
				return common.Operation(cmd, rt, func() bool {
					return rt.Session.Clone(cmd.Context(), args[0], target)
				})
			})
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "Folder to clone into (defaults to the current directory)")
	return cmd
}
