package cli

import (
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newReposCmd creates the repos command
func newReposCmd() *cobra.Command {
	var orgs bool

	cmd := &cobra.Command{
		Use:          "repos",
		Short:        "List your GitHub repositories",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				return common.Operation(cmd, rt, func() bool {
					if orgs {
						return rt.Session.ListOrgRepos(cmd.Context())
					}
					return rt.Session.ListMyRepos(cmd.Context())
				})
			})
		},
	}

	cmd.Flags().BoolVar(&orgs, "orgs", false, "List the repositories of your organizations instead")
	return cmd
}
