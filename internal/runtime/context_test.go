package runtime_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitdesk.dev/gitdesk/internal/config"
	"gitdesk.dev/gitdesk/internal/credential"
	"gitdesk.dev/gitdesk/internal/runtime"
	"gitdesk.dev/gitdesk/testhelpers"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.DirEnvVar, dir)
	t.Setenv("GITDESK_LOG_FILE", filepath.Join(t.TempDir(), "gitdesk.log"))
	t.Setenv(credential.EnvVar, "")
	return dir
}

func TestNewContext(t *testing.T) {
	t.Run("uses defaults without a config file", func(t *testing.T) {
		dir := setup(t)
		rt, err := runtime.NewContext(runtime.Options{Out: &bytes.Buffer{}})
		require.NoError(t, err)
		defer func() { require.NoError(t, rt.Close()) }()

		require.Equal(t, filepath.Join(dir, "config.yaml"), rt.ConfigPath)
		require.Equal(t, dir, rt.ConfigDir)
		require.Equal(t, "git", rt.Config.Git.Binary)
		require.False(t, rt.Credentials.HasToken())
		require.NotNil(t, rt.Session)
	})

	t.Run("loads the stored token", func(t *testing.T) {
		dir := setup(t)
		require.NoError(t, credential.NewStore(dir).Save("ghp_saved"))

		rt, err := runtime.NewContext(runtime.Options{Out: &bytes.Buffer{}})
		require.NoError(t, err)
		defer func() { _ = rt.Close() }()

		require.Equal(t, "ghp_saved", rt.Credentials.Token())
		require.True(t, rt.Session.Snapshot().HasToken)
	})

	t.Run("keeps the token next to an explicit config file", func(t *testing.T) {
		setup(t)
		other := t.TempDir()
		path := filepath.Join(other, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("git:\n  timeout: 1m\n"), 0o600))

		rt, err := runtime.NewContext(runtime.Options{ConfigPath: path, Out: &bytes.Buffer{}})
		require.NoError(t, err)
		defer func() { _ = rt.Close() }()

		require.Equal(t, path, rt.ConfigPath)
		require.Equal(t, other, rt.ConfigDir)
		require.Equal(t, time.Minute, rt.Config.Git.Timeout)
		require.Equal(t, other, filepath.Dir(rt.Credentials.Path()))
	})

	t.Run("rejects a malformed config file", func(t *testing.T) {
		dir := setup(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("git: [\n"), 0o600))

		_, err := runtime.NewContext(runtime.Options{Out: &bytes.Buffer{}})
		require.Error(t, err)
	})

	t.Run("runs git through the supplied runner", func(t *testing.T) {
		setup(t)
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		runner := testhelpers.NewFakeRunner().
			Succeed("branch --list", "* main\n  fake\n").
			Succeed("rev-parse --abbrev-ref HEAD", "main\n")

		rt, err := runtime.NewContext(runtime.Options{Out: &bytes.Buffer{}, Runner: runner})
		require.NoError(t, err)
		defer func() { _ = rt.Close() }()

		require.True(t, rt.Session.Open(context.Background(), scene.Dir))
		require.Equal(t, 1, runner.CountPrefix("branch --list"))
		require.Len(t, rt.Session.Snapshot().Branches, 2)
	})
}

func TestGetContext(t *testing.T) {
	_, err := runtime.GetContext(context.Background())
	require.Error(t, err)

	setup(t)
	rt, err := runtime.NewContext(runtime.Options{Out: &bytes.Buffer{}})
	require.NoError(t, err)
	defer func() { _ = rt.Close() }()

	got, err := runtime.GetContext(runtime.WithContext(context.Background(), rt))
	require.NoError(t, err)
	require.Same(t, rt, got)
}
