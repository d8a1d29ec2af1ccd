package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the gitdesk configuration",
		Long: `Show the gitdesk configuration.

Examples:
  gitdesk config path
  gitdesk config show`,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// newConfigPathCmd creates the config path command
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the config file and token are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "config: %s\n", rt.ConfigPath)
				_, _ = fmt.Fprintf(out, "token: %s\n", rt.Credentials.Path())
				return nil
			})
		},
	}
}

// newConfigShowCmd creates the config show command
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				data, err := yaml.Marshal(rt.Config)
				if err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
}
