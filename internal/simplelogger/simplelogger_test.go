package simplelogger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_WritesAndAppends(t *testing.T) {
	t.Setenv("UDIFF_LOG_FILE", filepath.Join(t.TempDir(), "udiff.log"))
	t.Setenv("UDIFF_LOG_LEVEL", "")

	Info("hello world", "hunks", 3)
	Warn("second")

	b, err := os.ReadFile(os.Getenv("UDIFF_LOG_FILE"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "udiff")
	require.Contains(t, lines[0], "hello world")
	require.Contains(t, lines[0], "hunks=3")
	require.Contains(t, lines[1], "second")
}

func TestLog_LevelThreshold(t *testing.T) {
	t.Setenv("UDIFF_LOG_FILE", filepath.Join(t.TempDir(), "udiff.log"))

	t.Setenv("UDIFF_LOG_LEVEL", "")
	Debug("hidden")
	Info("shown")

	t.Setenv("UDIFF_LOG_LEVEL", "debug")
	Debug("now visible")

	b, err := os.ReadFile(os.Getenv("UDIFF_LOG_FILE"))
	require.NoError(t, err)
	require.NotContains(t, string(b), "hidden")
	require.Contains(t, string(b), "shown")
	require.Contains(t, string(b), "now visible")
}

func TestLog_NoOpWhenUnset(t *testing.T) {
	t.Setenv("UDIFF_LOG_FILE", "")
	Info("should not panic", "k", "v")
}

func TestLog_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UDIFF_LOG_FILE", dir)

	Warn("ignored", "n", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
