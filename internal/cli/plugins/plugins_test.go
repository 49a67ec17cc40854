package plugins

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestFinder_NotFound(t *testing.T) {
	f := &Finder{Dirs: []string{t.TempDir()}}
	_, err := f.Find("nonexistent-plugin-xyz")
	assert.ErrorIs(t, err, ErrPluginNotFound)
}

func TestFinder_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeScript(t, second, "chatstat-chart", "exit 0")
	want := writeScript(t, first, "chatstat-chart", "exit 0")

	f := &Finder{Dirs: []string{first, second}}
	found, err := f.Find("chart")
	require.NoError(t, err)
	assert.Equal(t, want, found)
}

func TestFinder_SkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chatstat-export"), []byte("data"), 0644))

	f := &Finder{Dirs: []string{dir}}
	_, err := f.Find("export")
	assert.ErrorIs(t, err, ErrPluginNotFound)
}

func TestFinder_RejectsPathSeparators(t *testing.T) {
	f := &Finder{Dirs: []string{t.TempDir()}, UsePath: true}
	for _, name := range []string{"", "../chart", "a/b"} {
		_, err := f.Find(name)
		assert.ErrorIs(t, err, ErrPluginNotFound, "Find(%q)", name)
	}
}

func TestFinder_PathLookup(t *testing.T) {
	dir := t.TempDir()
	want := writeScript(t, dir, "chatstat-pathplugin", "exit 0")
	t.Setenv("PATH", dir)

	found, err := (&Finder{UsePath: true}).Find("pathplugin")
	require.NoError(t, err)
	assert.Equal(t, want, found)
}

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	path := writeScript(t, dir, "chatstat-echo", `echo "args:$*"; test -n "$`+EnvBinary+`" || exit 4; exit 3`)

	var stdout, stderr bytes.Buffer
	code := Execute(path, []string{"a", "b"}, Streams{In: strings.NewReader(""), Out: &stdout, Err: &stderr})

	assert.Equal(t, 3, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "args:a b")
}

func TestExecute_MissingBinary(t *testing.T) {
	var stderr bytes.Buffer
	code := Execute(filepath.Join(t.TempDir(), "missing"), nil, Streams{Out: &bytes.Buffer{}, Err: &stderr})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error executing plugin")
}

func TestFormatNotFoundError_KnownPlugin(t *testing.T) {
	err := FormatNotFoundError("chart")

	assert.Contains(t, err, "available as a plugin")
	assert.Contains(t, err, "chatstat-chart")
	assert.Contains(t, err, "~/.chatstat/plugins/chatstat-chart")
}

func TestFormatNotFoundError_UnknownPlugin(t *testing.T) {
	err := FormatNotFoundError("unknown")

	assert.Contains(t, err, "chatstat-unknown")
	assert.NotContains(t, err, "available as a plugin")
}

func TestIsExecutable(t *testing.T) {
	tmpDir := t.TempDir()

	nonExec := filepath.Join(tmpDir, "nonexec")
	require.NoError(t, os.WriteFile(nonExec, []byte("test"), 0644))
	assert.False(t, isExecutable(nonExec))

	execPath := filepath.Join(tmpDir, "exec")
	require.NoError(t, os.WriteFile(execPath, []byte("test"), 0755))
	assert.True(t, isExecutable(execPath))

	assert.False(t, isExecutable(tmpDir), "directories are not executable")
	assert.False(t, isExecutable(filepath.Join(tmpDir, "nonexistent")))
}
