// Package runner is the single capability toolstrap uses to spawn external
// programs: run a named command with arguments and get back its exit status
// and captured output. Orchestration code depends on the Runner interface so
// that tests can substitute scripted results.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/filesystem"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/paths"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single command when the caller sets none.
const DefaultTimeout = 30 * time.Minute

// WaitDelay bounds how long a killed command's output pipes may stay open,
// for example when a grandchild inherited them.
const WaitDelay = 2 * time.Second

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one.
	Dir string

	// Env is the complete environment of the child, as KEY=value pairs.
	// Name is resolved against the PATH found here. Nil inherits os.Environ().
	Env []string

	// Stream mirrors output to the operator while it is captured.
	Stream bool
}

// String renders the command line for logs and fake lookups.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the outcome of a command that was started.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// FirstLine returns the first non-empty line of stdout, falling back to stderr.
func (r Result) FirstLine() string {
	for _, out := range []string{r.Stdout, r.Stderr} {
		for _, line := range strings.Split(out, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// Runner runs external commands.
//
// Run returns a nil error only when the command exited with status zero.
// A command that could not be found is an ErrCommandNotFound error with
// ExitCode -1; a non-zero exit is an ErrCommandExecute error carrying the
// populated Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	logger  zerolog.Logger
	fs      types.FS
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// NewExecRunner creates a runner that bounds each command by timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{
		logger:  logging.GetLogger("runner"),
		fs:      filesystem.NewOS(),
		timeout: timeout,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// WithOutput redirects streamed output, mostly for tests.
func (r *ExecRunner) WithOutput(stdout, stderr io.Writer) *ExecRunner {
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// Run executes cmd and captures its output.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}

	resolved, ok := paths.FindExecutable(r.fs, cmd.Name, lookupEnv(env, paths.EnvPath))
	if !ok {
		return Result{ExitCode: -1}, errors.Newf(errors.ErrCommandNotFound, "%s: command not found", cmd.Name).
			WithDetail("command", cmd.Name)
	}

	logging.LogCommand(resolved, cmd.Args)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c := exec.CommandContext(ctx, resolved, cmd.Args...)
	c.Env = env
	c.WaitDelay = WaitDelay
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}

	var stdout, stderr bytes.Buffer
	if cmd.Stream {
		c.Stdout = io.MultiWriter(&stdout, r.stdout)
		c.Stderr = io.MultiWriter(&stderr, r.stderr)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	err := c.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		r.logger.Debug().Str("command", cmd.String()).Msg("Command succeeded")
		return result, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else {
		result.ExitCode = -1
	}

	r.logger.Debug().
		Err(err).
		Str("command", cmd.String()).
		Int("exitCode", result.ExitCode).
		Str("stderr", result.Stderr).
		Msg("Command failed")

	// A cancelled or timed-out context is the cause, not the kill it led to.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, errors.Wrapf(ctxErr, errors.ErrCommandExecute, "command interrupted: %s", cmd.String()).
			WithDetail("exitCode", result.ExitCode)
	}

	return result, errors.Wrapf(err, errors.ErrCommandExecute, "command failed: %s", cmd.String()).
		WithDetail("exitCode", result.ExitCode)
}

// lookupEnv returns the last value bound to key in env.
func lookupEnv(env []string, key string) string {
	prefix := key + "="
	value := ""
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			value = kv[len(prefix):]
		}
	}
	return value
}

// Verify interface compliance
var _ Runner = (*ExecRunner)(nil)
