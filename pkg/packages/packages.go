// Package packages installs the requested formulae in a single
// package-manager call.
package packages

import (
	"context"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/shellenv"
)

// Outcome summarises an install call.
type Outcome struct {
	Packages []string `json:"packages"`
	ExitCode int      `json:"exitCode"`
	Success  bool     `json:"success"`
}

// Installer runs `<executable> install <names...>`.
type Installer struct {
	runner     runner.Runner
	executable string
}

// NewInstaller creates an installer for the package manager at executable.
func NewInstaller(r runner.Runner, executable string) *Installer {
	return &Installer{runner: r, executable: executable}
}

// Install requests every name at once with the overlay environment. Output
// is streamed to the operator. A failure is an advisory ErrPackageInstall
// error; the package manager's own output is the diagnostic.
func (i *Installer) Install(ctx context.Context, names []string, ov shellenv.Overlay) (Outcome, error) {
	logger := logging.GetLogger("packages")
	outcome := Outcome{Packages: names}

	if len(names) == 0 {
		logger.Info().Msg("No packages requested")
		outcome.Success = true
		return outcome, nil
	}

	cmd := runner.Command{
		Name:   i.executable,
		Args:   append([]string{"install"}, names...),
		Env:    ov.Environ(),
		Stream: true,
	}
	res, err := i.runner.Run(ctx, cmd)
	outcome.ExitCode = res.ExitCode
	if err != nil {
		logger.Warn().Err(err).Strs("packages", names).Int("exitCode", res.ExitCode).Msg("Package install failed")
		return outcome, errors.Wrapf(err, errors.ErrPackageInstall, "package install exited with status %d", res.ExitCode).
			WithDetail("packages", names).
			WithDetail("exitCode", res.ExitCode)
	}

	outcome.Success = true
	logger.Info().Strs("packages", names).Msg("Packages installed")
	return outcome, nil
}
