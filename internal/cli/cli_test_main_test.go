package cli_test

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitdesk.dev/gitdesk/internal/cli"
	"gitdesk.dev/gitdesk/internal/config"
	"gitdesk.dev/gitdesk/internal/credential"
	"gitdesk.dev/gitdesk/testhelpers"
)

// isolate points the config dir and log file at temporary locations and
// clears GITHUB_TOKEN. It returns the config dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.DirEnvVar, dir)
	t.Setenv("GITDESK_LOG_FILE", filepath.Join(t.TempDir(), "gitdesk.log"))
	t.Setenv(credential.EnvVar, "")
	return dir
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// runGitdesk executes the root command in-process
func runGitdesk(t *testing.T, stdin io.Reader, args ...string) cmdResult {
	t.Helper()
	root := cli.NewRootCmd("1.2.3", "abc123", "2026-01-01")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	root.SetIn(stdin)
	root.SetArgs(args)
	err := root.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// runGitdeskBinary executes the built binary and returns its combined output
// and exit code
func runGitdeskBinary(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(testhelpers.GitdeskBinary(t), args...)
	cmd.Env = os.Environ()
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok, "unexpected error: %v", err)
	return string(out), exitErr.ExitCode()
}
