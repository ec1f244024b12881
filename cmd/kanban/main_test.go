package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	exec := func(args ...string) string {
		t.Helper()
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), args, &stdout, &stderr)
		require.NoError(t, err, "kanban %v: %s", args, stderr.String())
		return stdout.String()
	}

	assert.Contains(t, exec("init"), "Initialized kanban board")
	assert.FileExists(t, filepath.Join(dir, ".kanban", "board.json"))

	assert.Contains(t, exec("task", "add", "Write docs", "--tag", "docs"), "Write docs")
	assert.Contains(t, exec("show"), "Write docs")
	assert.Contains(t, exec("log"), `Added task "Write docs"`)

	logs, err := os.ReadDir(filepath.Join(dir, ".kanban", "logs"))
	require.NoError(t, err)
	assert.NotEmpty(t, logs)
}

func TestRun_NotInitialized(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"show"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kanban init")
}

func TestRun_Version(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--version"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), version)
}
