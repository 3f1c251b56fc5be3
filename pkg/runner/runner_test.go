package runner_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script in a fresh bin directory.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return dir
}

func envWithPath(dir string) []string {
	return []string{"PATH=" + dir + string(os.PathListSeparator) + "/bin:/usr/bin"}
}

func TestExecRunner_Success(t *testing.T) {
	dir := writeScript(t, "fakebrew", `echo "Homebrew 4.4.0"; echo "noise" >&2`)
	r := runner.NewExecRunner(time.Minute)

	res, err := r.Run(context.Background(), runner.Command{
		Name: "fakebrew",
		Args: []string{"--version"},
		Env:  envWithPath(dir),
	})

	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "Homebrew 4.4.0\n", res.Stdout)
	assert.Equal(t, "noise\n", res.Stderr)
	assert.Equal(t, "Homebrew 4.4.0", res.FirstLine())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	dir := writeScript(t, "failing", `echo "Warning: gsl is already installed" >&2; exit 3`)
	r := runner.NewExecRunner(time.Minute)

	res, err := r.Run(context.Background(), runner.Command{Name: "failing", Env: envWithPath(dir)})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
	assert.Equal(t, "Warning: gsl is already installed", res.FirstLine())
}

func TestExecRunner_CommandNotFound(t *testing.T) {
	r := runner.NewExecRunner(time.Minute)

	res, err := r.Run(context.Background(), runner.Command{
		Name: "definitely-not-installed",
		Env:  []string{"PATH=" + t.TempDir()},
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecRunner_UsesCommandEnvironment(t *testing.T) {
	dir := writeScript(t, "printenv-prefix", `echo "$HOMEBREW_PREFIX"`)
	r := runner.NewExecRunner(time.Minute)

	env := append(envWithPath(dir), "HOMEBREW_PREFIX=/opt/homebrew")
	res, err := r.Run(context.Background(), runner.Command{Name: "printenv-prefix", Env: env})

	require.NoError(t, err)
	assert.Equal(t, "/opt/homebrew", res.FirstLine())
}

func TestExecRunner_StreamMirrorsOutput(t *testing.T) {
	dir := writeScript(t, "chatty", `echo out; echo err >&2`)
	var stdout, stderr bytes.Buffer
	r := runner.NewExecRunner(time.Minute).WithOutput(&stdout, &stderr)

	res, err := r.Run(context.Background(), runner.Command{Name: "chatty", Env: envWithPath(dir), Stream: true})

	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	dir := writeScript(t, "where", `pwd`)
	work := t.TempDir()
	r := runner.NewExecRunner(time.Minute)

	res, err := r.Run(context.Background(), runner.Command{Name: "where", Dir: work, Env: envWithPath(dir)})

	require.NoError(t, err)
	resolved, _ := filepath.EvalSymlinks(work)
	got, _ := filepath.EvalSymlinks(res.FirstLine())
	assert.Equal(t, resolved, got)
}

func TestExecRunner_CancelledContext(t *testing.T) {
	// The background sleep inherits stdout and outlives the killed shell.
	dir := writeScript(t, "slowinstall", `sleep 30 & sleep 30`)
	r := runner.NewExecRunner(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	start := time.Now()
	res, err := r.Run(ctx, runner.Command{Name: "slowinstall", Env: envWithPath(dir)})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))
	assert.False(t, res.Success())
	assert.Less(t, elapsed, runner.WaitDelay+5*time.Second)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "brew", runner.Command{Name: "brew"}.String())
	assert.Equal(t, "brew install gcc gsl", runner.Command{Name: "brew", Args: []string{"install", "gcc", "gsl"}}.String())
}

func TestResultFirstLine(t *testing.T) {
	assert.Equal(t, "", runner.Result{}.FirstLine())
	assert.Equal(t, "second", runner.Result{Stdout: "\n  \nsecond\nthird"}.FirstLine())
	assert.Equal(t, "from stderr", runner.Result{Stderr: "from stderr\n"}.FirstLine())
}
