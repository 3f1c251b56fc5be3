package vcs

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/rs/zerolog"
)

// CLIGit drives the git binary.
type CLIGit struct {
	runner runner.Runner
	fs     types.FS
	branch string
	logger zerolog.Logger
}

// NewCLIGit creates a CLI backend running git through r. fs is only read,
// to recognise existing working copies.
func NewCLIGit(r runner.Runner, fs types.FS, branch string) *CLIGit {
	return &CLIGit{
		runner: r,
		fs:     fs,
		branch: branch,
		logger: logging.GetLogger("vcs.cli"),
	}
}

func (g *CLIGit) Clone(ctx context.Context, url, dir string) error {
	_, err := g.git(ctx, true, "clone", url, dir)
	return err
}

func (g *CLIGit) Refresh(ctx context.Context, dir string) error {
	if _, err := g.git(ctx, true, "-C", dir, "fetch", "--force", RemoteName); err != nil {
		return err
	}

	target := RemoteName + "/HEAD"
	if res, err := g.git(ctx, false, "-C", dir, "rev-parse", "--abbrev-ref", target); err != nil || res.FirstLine() == "" {
		g.logger.Debug().Str("dir", dir).Str("branch", g.branch).Msg("Remote HEAD unknown, using fallback branch")
		target = RemoteName + "/" + g.branch
	}

	_, err := g.git(ctx, true, "-C", dir, "reset", "--hard", target)
	return err
}

func (g *CLIGit) IsWorkingCopy(dir string) bool {
	_, err := g.fs.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func (g *CLIGit) git(ctx context.Context, stream bool, args ...string) (runner.Result, error) {
	return g.runner.Run(ctx, runner.Command{Name: "git", Args: args, Stream: stream})
}

var _ Git = (*CLIGit)(nil)
