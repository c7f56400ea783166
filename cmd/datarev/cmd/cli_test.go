package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type ExitMocks struct {
	mock.Mock
	fatalCalls int
	exitCode   int
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.fatalCalls++
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.fatalCalls++
}

func (m *ExitMocks) Exit(code int) {
	m.fatalCalls++
	m.exitCode = code
}

var exitMocks *ExitMocks

type testEnv struct {
	dir       string
	workspace string
	data      string
	out       *bytes.Buffer
}

func setupTests(t *testing.T) *testEnv {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("DATAREV_CONFIG", "")

	exitMocks = new(ExitMocks)
	logFatalf = exitMocks.Fatalf
	logFatalln = exitMocks.Fatalln
	osExit = exitMocks.Exit

	out := new(bytes.Buffer)
	infoLogger.SetOutput(out)
	t.Cleanup(func() {
		infoLogger.SetOutput(os.Stdout)
		viper.Reset()
	})

	data := filepath.Join(dir, "data", "images")
	require.NoError(t, os.MkdirAll(data, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "train.jsonl"),
		[]byte(`{"id":"a1","media":"a1.png"}`+"\n"+`{"id":"a2","media":"a2.png"}`+"\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(data, "test.jsonl"),
		[]byte(`{"id":"b1","media":"b1.png"}`+"\n"), 0600))

	return &testEnv{
		dir:       dir,
		workspace: filepath.Join(dir, "project"),
		data:      data,
		out:       out,
	}
}

func (e *testEnv) runCmd(t *testing.T, args []string, intentMsg string, expectError bool) string {
	datarevFlags = flagsT{}
	exitMocks.fatalCalls = 0
	exitMocks.exitCode = 0
	e.out.Reset()

	rootCmd.SetArgs(append([]string{"--loglevel", "none"}, args...))
	require.NoError(t, rootCmd.Execute(), "unexpected cobra error: %s", intentMsg)
	if expectError {
		require.NotZerof(t, exitMocks.fatalCalls, "expected command to fail: %s", intentMsg)
	} else {
		require.Zerof(t, exitMocks.fatalCalls, "unexpected failure: %s", intentMsg)
	}
	return e.out.String()
}

func TestWorkflow(t *testing.T) {
	env := setupTests(t)
	ws := []string{"--workspace", env.workspace}

	out := env.runCmd(t, []string{"init", env.workspace}, "init workspace", false)
	assert.Contains(t, out, env.workspace)
	env.runCmd(t, []string{"init", env.workspace}, "init workspace twice", true)

	out = env.runCmd(t, append(ws, "source", "add", "--name", "images", "--url", env.data), "add source", false)
	assert.Contains(t, out, "format: jsonl")
	env.runCmd(t, append(ws, "source", "add", "--name", "bad.name", "--url", env.data), "add invalid source", true)

	env.runCmd(t, append(ws, "stage", "add", "--source", "images", "--name", "train",
		"--transform", "subset", "--param", "subsets=train"), "add stage", false)
	env.runCmd(t, append(ws, "stage", "add", "--source", "images", "--name", "bad",
		"--transform", "subset", "--param", "subsets"), "add stage with a malformed param", true)

	out = env.runCmd(t, append(ws, "source", "list"), "list sources", false)
	assert.Contains(t, out, "images , jsonl , ")
	assert.Contains(t, out, "root > train")

	// another process holds the workspace lock
	lock := filepath.Join(env.workspace, ".datarev", lockFile)
	require.NoError(t, os.WriteFile(lock, []byte(fmt.Sprintf("%d\n", os.Getppid())), 0600))
	env.runCmd(t, append(ws, "commit", "--message", "locked"), "commit a locked workspace", true)
	require.NoError(t, os.Remove(lock))

	out = env.runCmd(t, append(ws, "commit", "--message", "first import"), "commit", false)
	assert.Contains(t, out, "committed")
	env.runCmd(t, append(ws, "commit", "--message", "again"), "empty commit", true)

	out = env.runCmd(t, append(ws, "log"), "log", false)
	assert.Contains(t, out, "first import")
	assert.Contains(t, out, "images")

	out = env.runCmd(t, append(ws, "info", "HEAD:images.train"), "info in ambient workspace", false)
	assert.Contains(t, out, "as ambient-revision")
	assert.Contains(t, out, "items:     2")

	out = env.runCmd(t, []string{"info", env.workspace + "@HEAD:images"}, "info with explicit workspace", false)
	assert.Contains(t, out, "as workspace-path")
	assert.Contains(t, out, "items:     3")

	out = env.runCmd(t, []string{"info", "--template", "{{.Items}} {{.Format}}", env.data}, "info on bare dataset", false)
	assert.Contains(t, out, "3 jsonl")

	env.runCmd(t, []string{"info", filepath.Join(env.dir, "nowhere")}, "info on missing path", true)
	assert.Equal(t, int(unix.ENOENT), exitMocks.exitCode)

	out = env.runCmd(t, []string{"detect", env.data}, "detect format", false)
	assert.Contains(t, out, "jsonl")
	env.runCmd(t, []string{"detect", env.dir}, "detect on non dataset", true)
	assert.Equal(t, int(unix.ENOENT), exitMocks.exitCode)

	exported := filepath.Join(env.dir, "exported")
	out = env.runCmd(t, append(ws, "export", "HEAD:images", "--output", exported), "export", false)
	assert.Contains(t, out, "3 items exported")
	out = env.runCmd(t, []string{"detect", exported}, "detect exported format", false)
	assert.Contains(t, out, "datarev")

	out = env.runCmd(t, append(ws, "source", "remove", "images"), "remove source", false)
	assert.Contains(t, out, "removed")
	env.runCmd(t, append(ws, "source", "remove", "images"), "remove unknown source", true)
	assert.Equal(t, int(unix.ENOENT), exitMocks.exitCode)

	// the revision remains available
	out = env.runCmd(t, []string{"info", env.workspace + "@HEAD:images"}, "info on committed source", false)
	assert.Contains(t, out, "items:     3")
}

func TestConfigCreate(t *testing.T) {
	env := setupTests(t)
	env.runCmd(t, []string{"config", "create", "--name", "tester", "--email", "tester@example.com",
		"--workspace", env.workspace}, "create config", false)

	b, err := os.ReadFile(filepath.Join(env.dir, ".datarev", "datarev.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "tester@example.com")
	assert.Contains(t, string(b), env.workspace)

	env.runCmd(t, []string{"config", "create"}, "create config without contributor", true)
}

func TestVersion(t *testing.T) {
	env := setupTests(t)
	out := env.runCmd(t, []string{"version"}, "version", false)
	assert.Contains(t, out, "Version: dev")
	assert.Contains(t, out, "Workspace layout: 1.0.0")
	assert.Contains(t, out, "Formats: csv, datarev, jsonl")

	out = env.runCmd(t, []string{"version", "--template", "{{.WorkspaceVersion}}"}, "version with template", false)
	assert.Equal(t, "1.0.0\n", out)
}
