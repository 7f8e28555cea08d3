package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/purrlang/purr/purr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestRunMainProgram(t *testing.T) {
	stdout, stderr, err := execute(t, "jake\n", "run")
	require.NoError(t, err)

	want := strings.Join([]string{
		"jake says mew",
		"jake says meow",
		"princess says mew",
		"princess says meow",
		`{"cats":["jake","princess"],"message":"hello world! :)"}`,
		"what's your name?",
		"nice to meet you, jake",
	}, "\n") + "\n"
	assert.Equal(t, want, stdout)
	assert.Contains(t, stderr, "program finished")
	assert.Contains(t, stderr, "purr.module=main")
}

func TestRunWithoutInputGreetsStranger(t *testing.T) {
	stdout, _, err := execute(t, "", "run")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stdout, "nice to meet you, stranger\n"), stdout)
}

func TestRunEntryFlag(t *testing.T) {
	stdout, stderr, err := execute(t, "", "run", "--entry", "kittens")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "purr.module=kittens")
}

func TestRunUnknownEntry(t *testing.T) {
	_, stderr, err := execute(t, "", "run", "--entry", "dogs")
	require.ErrorIs(t, err, purr.ErrInvalidImport)
	assert.Contains(t, err.Error(), "run dogs")
	assert.Contains(t, stderr, "program failed")
}

func TestRunWithConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "purr.yaml")
	logPath := filepath.Join(dir, "purr.log")
	require.NoError(t, os.WriteFile(configPath, []byte("entry_point: cats\nlog_level: warn\nlog_file: "+logPath+"\n"), 0o600))

	stdout, stderr, err := execute(t, "", "run", "--config", configPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.NotContains(t, stderr, "program finished")

	_, err = os.Stat(logPath)
	require.NoError(t, err)
}

func TestRunBadConfig(t *testing.T) {
	_, _, err := execute(t, "", "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "load config")
}

func TestModulesCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "modules")
	require.NoError(t, err)
	assert.Equal(t, "cats\nkittens\nmain (entry)\npurr\n", stdout)
}

func TestJSONCommand(t *testing.T) {
	stdout, _, err := execute(t, `{"cats":["jake","princess"],"lives":9}`, "json")
	require.NoError(t, err)
	assert.Equal(t, "{cats: [\"jake\", \"princess\"], lives: 9}\n", stdout)

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, null]`), 0o600))
	stdout, _, err = execute(t, "", "json", path)
	require.NoError(t, err)
	assert.Equal(t, "[1, nothing]\n", stdout)

	_, _, err = execute(t, `{"broken"`, "json")
	require.ErrorIs(t, err, purr.ErrBadConversion)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "purr "+version+"\n", stdout)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := execute(t, "", "purrr")
	require.Error(t, err)
}

func TestUseConsole(t *testing.T) {
	assert.True(t, useConsole(purr.Config{Console: true}, strings.NewReader("")))
	assert.False(t, useConsole(purr.Config{}, strings.NewReader("")))
}

func TestConsoleLogsStayOffTheTerminal(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, io.Discard, logOutput(true, &stderr))
	assert.Equal(t, io.Writer(&stderr), logOutput(false, &stderr))

	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, closer, err := purr.NewLogger(purr.Config{LogFile: logPath}, logOutput(true, &stderr))
	require.NoError(t, err)
	logger.Info("starting console host")
	require.NoError(t, closer.Close())

	assert.Empty(t, stderr.String())
	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "starting console host")
}
