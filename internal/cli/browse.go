package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/git"
	"gitdesk.dev/gitdesk/internal/runtime"
	"gitdesk.dev/gitdesk/internal/utils"
)

// newBrowseCmd creates the browse command
func newBrowseCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:          "browse",
		Short:        "Open the origin repository's web page",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				repo, err := git.OpenRepository(common.RepoPath(rt))
				if err != nil {
					return err
				}
				info, err := git.ParseRemoteURL(repo.OriginURL())
				if err != nil {
					return fmt.Errorf("no GitHub origin remote: %w", err)
				}
				url := info.WebURL()
				if printOnly {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
					return nil
				}
				rt.Splog.Info("Opening %s", url)
				return utils.OpenBrowser(url)
			})
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the address instead of opening it")
	return cmd
}
