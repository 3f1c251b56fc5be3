// Package bootstrap runs the provisioning steps in order: platform check,
// locate or install the package manager, activate its environment, install
// packages, patch the runtime-environment file and report diagnostics.
//
// Fatal failures stop the run and are returned as errors: a platform
// mismatch, a failed initial clone, unusable shellenv output, or the context
// being cancelled. Everything else is recorded in Report.Warnings and the run
// carries on.
package bootstrap

import (
	"context"

	"github.com/arthur-debert/toolstrap/pkg/config"
	"github.com/arthur-debert/toolstrap/pkg/diagnostics"
	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/keyline"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/packages"
	"github.com/arthur-debert/toolstrap/pkg/platform"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/runtimeenv"
	"github.com/arthur-debert/toolstrap/pkg/shellenv"
	"github.com/arthur-debert/toolstrap/pkg/toolchain"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/arthur-debert/toolstrap/pkg/vcs"
)

// Options carries the run's configuration and capabilities.
type Options struct {
	Config *config.Config
	FS     types.FS
	Runner runner.Runner

	// Git defaults to the backend named by the config.
	Git vcs.Git

	// Environ is the starting environment; nil means the process environment.
	Environ []string

	// GOOS overrides the detected operating system.
	GOOS string
}

// Run executes a full bootstrap.
func Run(ctx context.Context, opts Options) (*Report, error) {
	logger := logging.GetLogger("bootstrap")
	cfg := opts.Config
	report := &Report{}

	if opts.Git == nil {
		git, err := vcs.New(cfg.Toolchain.GitBackend, cfg.Toolchain.Branch, opts.Runner, opts.FS)
		if err != nil {
			return report, err
		}
		opts.Git = git
	}

	overlay := shellenv.Current()
	if opts.Environ != nil {
		overlay = shellenv.FromEnviron(opts.Environ)
	}
	logger.Debug().Int("variables", overlay.Len()).Msg("Starting environment")

	// 1. Platform
	done := logging.LogOperationStart(logger, "platform")
	info, err := platform.NewGuard(opts.FS).WithGOOS(opts.GOOS).Check(cfg.Platform.RequiredOS)
	report.Platform = info
	done()
	if err != nil {
		return report, err
	}

	// 2. Locate, 3. install when absent
	done = logging.LogOperationStart(logger, "toolchain")
	inst, found := toolchain.NewLocator(opts.FS, cfg.Toolchain.Executable).Locate(overlay)
	if found {
		report.Path = PathReuse
	} else {
		report.Path = PathInstall
		var action toolchain.InstallAction
		inst, action, err = toolchain.NewInstaller(opts.FS, opts.Git, cfg.Toolchain.Executable).
			Install(ctx, cfg.Toolchain.Repository, cfg.Toolchain.InstallDir)
		report.InstallAction = action
		if ierr := interrupted(ctx, "toolchain"); ierr != nil {
			done()
			return report, ierr
		}
		if err != nil {
			if !errors.IsAdvisory(err) {
				done()
				return report, err
			}
			report.warn(err)
		}
	}
	report.Installation = inst
	done()

	// 4. Activate
	done = logging.LogOperationStart(logger, "activate")
	activator := toolchain.NewActivator(opts.Runner, cfg.Toolchain.ShellenvArgs)
	eval, err := activator.Activate(ctx, inst, overlay)
	done()
	if ierr := interrupted(ctx, "activate"); ierr != nil {
		return report, ierr
	}
	if err != nil {
		return report, err
	}
	overlay = eval.Overlay
	report.Bindings = eval.Bindings
	report.Environment = overlay

	// Dotfile write failures below are advisory: the installation itself is
	// usable without them.
	if report.Path == PathInstall {
		needle, line := toolchain.StartupLine(inst.Executable)
		report.StartupFile = cfg.Toolchain.StartupFile
		changed, err := keyline.New(opts.FS).EnsureContaining(cfg.Toolchain.StartupFile, needle, line)
		report.StartupChanged = changed
		if err != nil {
			report.warn(err)
		}
	}

	// 5. Packages
	done = logging.LogOperationStart(logger, "packages")
	outcome, err := packages.NewInstaller(opts.Runner, inst.Executable).Install(ctx, cfg.Packages.Install, overlay)
	report.Packages = outcome
	done()
	if ierr := interrupted(ctx, "packages"); ierr != nil {
		return report, ierr
	}
	if err != nil {
		report.warn(err)
	}

	// 6. Runtime environment
	done = logging.LogOperationStart(logger, "runtime-env")
	report.Prefix = activator.Prefix(ctx, inst, overlay)
	if ierr := interrupted(ctx, "runtime-env"); ierr != nil {
		done()
		return report, ierr
	}
	report.RuntimeEnvFile = cfg.RuntimeEnv.Path
	changes, err := runtimeenv.NewPatcher(opts.FS).Apply(cfg.RuntimeEnv.Path, cfg.RuntimeEnv.Entries, runtimeenv.TemplateData{
		Prefix: report.Prefix,
		Root:   inst.Root,
	})
	report.RuntimeEnv = changes
	done()
	if err != nil {
		report.warn(err)
	}

	// 7. Diagnostics
	done = logging.LogOperationStart(logger, "diagnostics")
	results, failures := diagnostics.NewReporter(opts.Runner).Run(ctx, cfg.Diagnostics.Checks, overlay)
	report.Diagnostics = results
	done()
	if ierr := interrupted(ctx, "diagnostics"); ierr != nil {
		return report, ierr
	}
	for _, f := range failures {
		report.warn(f)
	}

	logger.Info().
		Str("path", string(report.Path)).
		Str("root", inst.Root).
		Int("warnings", len(report.Warnings)).
		Msg("Bootstrap complete")
	return report, nil
}

// interrupted returns a fatal error once ctx is done. Command failures caused
// by the cancellation must not be recorded as advisory warnings.
func interrupted(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrInterrupted, "interrupted during %s", step).
			WithDetail("step", step)
	}
	return nil
}
