package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog_Console(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "")
	require.NoError(t, err)

	splog.Info("hello %s", "world")
	splog.Debug("hidden")
	splog.Warn("careful")

	require.Equal(t, "hello world\nWarning: careful\n", buf.String())
	require.NoError(t, splog.Close())
}

func TestSplog_DebugMode(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "")
	require.NoError(t, err)

	splog.Debug("visible")
	require.Equal(t, "visible\n", buf.String())
}

func TestSplog_Quiet(t *testing.T) {
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "")
	require.NoError(t, err)

	splog.SetQuiet(true)
	require.True(t, splog.IsQuiet())
	splog.Info("suppressed")
	splog.Warn("also suppressed")
	require.Empty(t, buf.String())

	splog.SetQuiet(false)
	splog.Info("back")
	require.Equal(t, "back\n", buf.String())
}

func TestSplog_FileLogging(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "gitdesk.log")
	splog, err := NewSplogWithConfig(&buf, path)
	require.NoError(t, err)

	splog.Debug("debug goes to file")
	splog.FileLogger().Info("file only", "op", "abc")
	require.NoError(t, splog.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "debug goes to file")
	require.Contains(t, string(data), "file only")
	require.Contains(t, string(data), "op=abc")
	require.NotContains(t, buf.String(), "file only")
}

func TestSplog_FileLoggerWithoutFile(t *testing.T) {
	splog, err := NewSplogWithConfig(&bytes.Buffer{}, "")
	require.NoError(t, err)
	require.NotNil(t, splog.FileLogger())
	splog.FileLogger().Info("discarded")
}

func TestCreateLumberjackLogger(t *testing.T) {
	t.Setenv("GITDESK_LOG_MAX_SIZE", "5")
	t.Setenv("GITDESK_LOG_MAX_BACKUPS", "0")
	t.Setenv("GITDESK_LOG_MAX_AGE", "not-a-number")

	l := createLumberjackLogger("/tmp/x.log")
	require.Equal(t, 5, l.MaxSize)
	require.Equal(t, 0, l.MaxBackups)
	require.Equal(t, 30, l.MaxAge)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("GITDESK_LOG_FILE", "/custom/path.log")
	require.Equal(t, "/custom/path.log", GetLogFilePath())

	t.Setenv("GITDESK_LOG_FILE", "")
	require.True(t, strings.HasSuffix(GetLogFilePath(), filepath.Join(".gitdesk", "logs", "gitdesk.log")))
}
