package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// ErrOperationFailed is returned by a command whose operation failed. The
// failure has already been printed.
var ErrOperationFailed = common.ErrOperationFailed

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		repoPath   string
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "gitdesk",
		Short: "A terminal front-end for git and your GitHub repositories",
		Long: `gitdesk shows the branches, current branch and history of a repository and
runs the everyday git operations: fetch, pull, merge, commit, push and clone.
It can also list the GitHub repositories of your account and organizations.

Run without arguments in a terminal to start the interactive interface.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			interactive := !cmd.HasParent() && output.IsTTY()
			rt, err := runtime.NewContext(runtime.Options{
				ConfigPath:  configPath,
				RepoPath:    repoPath,
				Out:         cmd.ErrOrStderr(),
				Interactive: interactive,
			})
			if err != nil {
				return err
			}
			cmd.SetContext(runtime.WithContext(cmd.Context(), rt))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if rt, err := runtime.GetContext(cmd.Context()); err == nil {
				return rt.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !output.IsTTY() {
				return cmd.Help()
			}
			return common.Run(cmd, func(rt *runtime.Context) error {
				return runTUI(cmd, rt)
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", "", "Repository to operate on (defaults to the current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newBranchesCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newReposCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// Execute runs the root command and returns the process exit code
func Execute(version, commit, date string) int {
	rootCmd := NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrOperationFailed) {
			_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
