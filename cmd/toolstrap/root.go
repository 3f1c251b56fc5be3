package toolstrap

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/arthur-debert/toolstrap/internal/version"
	"github.com/arthur-debert/toolstrap/pkg/bootstrap"
	"github.com/arthur-debert/toolstrap/pkg/config"
	"github.com/arthur-debert/toolstrap/pkg/filesystem"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/arthur-debert/toolstrap/pkg/ui"
	"github.com/arthur-debert/toolstrap/pkg/vcs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// environment is what a run touches outside the process. Tests swap it for
// in-memory fakes.
type environment struct {
	fs        types.FS
	newRunner func(cfg *config.Config, stream io.Writer) runner.Runner

	// git nil selects the backend named in the config
	git     vcs.Git
	environ []string
	goos    string
}

func systemEnvironment() environment {
	return environment{
		fs: filesystem.NewOS(),
		newRunner: func(cfg *config.Config, stream io.Writer) runner.Runner {
			return runner.NewExecRunner(cfg.Commands.Timeout.Std()).WithOutput(stream, os.Stderr)
		},
	}
}

// rootOptions are the values bound to persistent flags.
type rootOptions struct {
	verbosity      int
	configFile     string
	format         string
	installDir     string
	gitBackend     string
	startupFile    string
	runtimeEnvFile string
	packages       []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(systemEnvironment())
}

func newRootCmd(env environment) *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "toolstrap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd, opts, env)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	flags.StringVar(&opts.installDir, "install-dir", "", MsgFlagInstallDir)
	flags.StringVar(&opts.gitBackend, "git-backend", "", MsgFlagGitBackend)
	flags.StringVar(&opts.startupFile, "startup-file", "", MsgFlagStartupFile)
	flags.StringVar(&opts.runtimeEnvFile, "runtime-env-file", "", MsgFlagRuntimeEnvFile)
	flags.StringSliceVar(&opts.packages, "package", nil, MsgFlagPackages)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("git-backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{vcs.BackendCLI, vcs.BackendGoGit}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func runBootstrap(cmd *cobra.Command, opts *rootOptions, env environment) error {
	logger := logging.GetLogger("cmd.run")

	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer, err := ui.NewRenderer(format, out)
	if err != nil {
		return err
	}

	// Streamed child output would corrupt a JSON document on stdout.
	stream := out
	if format == ui.FormatJSON {
		stream = cmd.ErrOrStderr()
	}

	report, runErr := bootstrap.Run(cmd.Context(), bootstrap.Options{
		Config:  cfg,
		FS:      env.fs,
		Runner:  env.newRunner(cfg, stream),
		Git:     env.git,
		Environ: env.environ,
		GOOS:    env.goos,
	})

	if report != nil {
		if err := renderer.RenderReport(report); err != nil {
			return err
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("Bootstrap failed")
		errRenderer, err := ui.NewRenderer(format, cmd.ErrOrStderr())
		if err != nil {
			return runErr
		}
		if stderrors.Is(runErr, context.Canceled) {
			err = errRenderer.RenderMessage(MsgInterrupted)
		} else {
			err = errRenderer.RenderError(runErr)
		}
		if err != nil {
			return runErr
		}
		return &reportedError{err: runErr}
	}

	logger.Info().Int("warnings", len(report.Warnings)).Msg("Bootstrap completed")
	return nil
}

// loadConfig layers the command-line overrides over the config sources.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()

	if flags.Changed("install-dir") {
		overrides["toolchain.install_dir"] = opts.installDir
	}
	if flags.Changed("git-backend") {
		overrides["toolchain.git_backend"] = opts.gitBackend
	}
	if flags.Changed("startup-file") {
		overrides["toolchain.startup_file"] = opts.startupFile
	}
	if flags.Changed("runtime-env-file") {
		overrides["runtime_env.path"] = opts.runtimeEnvFile
	}
	if flags.Changed("package") {
		overrides["packages.install"] = opts.packages
	}

	return config.Load(config.Options{File: opts.configFile, Overrides: overrides})
}

// reportedError marks an error the command has already shown the operator.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already rendered by the command.
func IsReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

// ExitCode maps the result of Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
