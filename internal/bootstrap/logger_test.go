package bootstrap

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/config"
)

func writeLogs(t *testing.T, dir string, n int) []string {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf(LogFileNamePattern, base.Add(time.Duration(i)*time.Hour).Format(LogFileTimestampFormat))
		require.NoError(t, os.WriteFile(filepath.Join(dir, names[i]), []byte("x"), 0o644))
	}
	return names
}

func listLogs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := writeLogs(t, dir, 12)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	assert.Equal(t, names[3:], listLogs(t, dir))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestCleanupLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	names := writeLogs(t, dir, 4)

	cleanupLogs(dir, LogFileRetentionCount)
	assert.Equal(t, names, listLogs(t, dir))
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	writeLogs(t, mustMkdir(t, dir), 10)

	cfg := &config.Config{LogDir: dir, LogLevel: "info", LogFormat: "text", Environment: "test", Version: "v1"}
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	var stdout bytes.Buffer
	f, err := setupLogger(cfg, &stdout, now)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	slog.Info("hello from test")

	logs := listLogs(t, dir)
	assert.Len(t, logs, LogFileRetentionCount+1)
	assert.Equal(t, "session_2025-03-04_05-06-07.log", logs[len(logs)-1])

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, stdout.String(), "hello from test")
	assert.Contains(t, stdout.String(), LogMsgStartingLevelBot)
}

func mustMkdir(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, DirPermission))
	return dir
}
