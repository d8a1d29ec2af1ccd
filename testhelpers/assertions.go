package testhelpers

import (
	"os/exec"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectBranches asserts the local branches of repo, in any order
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir,
		"for-each-ref", "refs/heads/", "--format=%(refname:short)")
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list branches")

	actual := nonEmptyLines(string(output))
	want := append([]string(nil), expected...)
	sort.Strings(actual)
	sort.Strings(want)

	require.Equal(t, want, actual, "Branches do not match")
}

// ExpectCommits asserts the newest commit subjects on branch, newest first.
// Older commits beyond len(expected) are ignored.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir, "log", "--format=%s", branch)
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list commits")

	subjects := nonEmptyLines(string(output))
	require.GreaterOrEqual(t, len(subjects), len(expected), "Not enough commits on %s", branch)
	require.Equal(t, expected, subjects[:len(expected)], "Commits do not match")
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
