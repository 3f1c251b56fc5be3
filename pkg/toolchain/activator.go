package toolchain

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/paths"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/shellenv"
)

// PrefixVar is the variable shellenv binds to the installation prefix.
const PrefixVar = "HOMEBREW_PREFIX"

// Activator evaluates the package manager's environment exports.
type Activator struct {
	runner runner.Runner
	args   []string
}

// NewActivator creates an activator that runs the executable with args,
// usually "shellenv bash".
func NewActivator(r runner.Runner, args []string) *Activator {
	return &Activator{runner: r, args: args}
}

// Activate runs shellenv with base as its environment and returns base with
// the exported bindings applied. Any failure is a fatal ErrShellenv error.
func (a *Activator) Activate(ctx context.Context, inst Installation, base shellenv.Overlay) (shellenv.Evaluation, error) {
	logger := logging.GetLogger("toolchain.activator")

	cmd := runner.Command{Name: inst.Executable, Args: a.args, Env: base.Environ()}
	res, err := a.runner.Run(ctx, cmd)
	if err != nil {
		return shellenv.Evaluation{Overlay: base}, errors.Wrapf(err, errors.ErrShellenv, "cannot obtain environment from %s", cmd.String()).
			WithDetail("exitCode", res.ExitCode).
			WithDetail("stderr", res.Stderr)
	}

	eval, err := shellenv.Evaluate(res.Stdout, base)
	if err != nil {
		return eval, errors.Wrapf(err, errors.ErrShellenv, "cannot evaluate output of %s", cmd.String())
	}

	prefix, ok := eval.Overlay.Get(PrefixVar)
	if !ok {
		logger.Debug().Str("variable", PrefixVar).Msg("shellenv output did not bind the prefix")
	}
	if prefix != "" {
		bin := filepath.Join(prefix, "bin")
		if !eval.Overlay.HasPathEntry(bin) {
			logger.Debug().Str("prefix", prefix).Msg("shellenv left prefix off PATH, prepending it")
			eval.Overlay = eval.Overlay.PrependPath(bin, filepath.Join(prefix, "sbin"))
			eval.Bindings = append(eval.Bindings, shellenv.Binding{Name: paths.EnvPath, Value: eval.Overlay.Value(paths.EnvPath)})
		}
	}

	logger.Info().Int("bindings", len(eval.Bindings)).Msg("Environment activated")
	return eval, nil
}

// Prefix asks the package manager for its prefix. It falls back to the
// shellenv prefix and then to the installation root.
func (a *Activator) Prefix(ctx context.Context, inst Installation, ov shellenv.Overlay) string {
	res, err := a.runner.Run(ctx, runner.Command{Name: inst.Executable, Args: []string{"--prefix"}, Env: ov.Environ()})
	if err == nil {
		if line := res.FirstLine(); line != "" {
			return line
		}
	}
	if prefix := ov.Value(PrefixVar); prefix != "" {
		return prefix
	}
	return inst.Root
}

// StartupLine returns the activation statement for exe and the substring
// that identifies an existing one.
func StartupLine(exe string) (needle, line string) {
	needle = exe + " shellenv"
	return needle, `eval "$(` + needle + `)"`
}
