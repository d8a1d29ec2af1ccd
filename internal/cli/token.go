package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"gitdesk.dev/gitdesk/internal/cli/common"
	"gitdesk.dev/gitdesk/internal/output"
	"gitdesk.dev/gitdesk/internal/runtime"
)

// newTokenCmd creates the token command
func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored GitHub token",
	}
	cmd.AddCommand(newTokenSetCmd())
	return cmd
}

// newTokenSetCmd creates the token set command
func newTokenSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Save the GitHub personal access token",
		Long: `Save the GitHub personal access token used to list repositories.

Without an argument the token is prompted for when stdin is a terminal,
and read from the first line of stdin otherwise.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(rt *runtime.Context) error {
				var token string
				if len(args) == 1 {
					token = args[0]
				} else {
					t, err := readToken(cmd.InOrStdin(), output.IsStdinTTY())
					if err != nil {
						return err
					}
					token = t
				}
				return common.Operation(cmd, rt, func() bool {
					return rt.Session.SetToken(token)
				})
			})
		},
	}
}

func readToken(in io.Reader, interactive bool) (string, error) {
	if interactive {
		var token string
		prompt := &survey.Password{
			Message: "GitHub token:",
		}
		if err := survey.AskOne(prompt, &token); err != nil {
			return "", fmt.Errorf("token prompt canceled: %w", err)
		}
		return token, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
